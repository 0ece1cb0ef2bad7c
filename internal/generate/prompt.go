// Package generate turns a photo and a style into a sketch using a Gemini
// image model.
package generate

import (
	"strings"

	"github.com/sketchify-dev/sketchify/internal/style"
)

// PreserveSuffix is appended to every style fragment.
const PreserveSuffix = " Maintain the original composition and subject matter exactly. Return only the image."

// BuildPrompt returns the full instruction sent alongside the photo.
func BuildPrompt(st style.Style) string {
	return strings.TrimSpace(st.Fragment) + PreserveSuffix
}
