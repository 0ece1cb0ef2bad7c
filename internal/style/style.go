// Package style defines the fixed catalog of sketch styles.
package style

import (
	"fmt"
	"strings"
)

// Style is one entry of the catalog: a display label and the instruction
// fragment sent to the generation service.
type Style struct {
	Key      string
	Label    string
	Fragment string
}

// String returns the display label.
func (s Style) String() string {
	return s.Label
}

// Catalog entries, in display order.
var (
	Pencil = Style{
		Key:      "pencil",
		Label:    "Classic Pencil",
		Fragment: "Convert this image into a realistic graphite pencil sketch. Focus on shading, fine details, and gradients. Grey tones on white paper.",
	}
	Charcoal = Style{
		Key:      "charcoal",
		Label:    "Charcoal",
		Fragment: "Convert this image into a high-contrast charcoal drawing. Use smudged shadows and bold strokes. Black and white only.",
	}
	Ink = Style{
		Key:      "ink",
		Label:    "Pen & Ink",
		Fragment: "Convert this image into a pen and ink drawing. Use cross-hatching for shading and sharp, defined lines. Black ink on white paper.",
	}
	ColoredPencil = Style{
		Key:      "colored-pencil",
		Label:    "Colored Pencil",
		Fragment: "Convert this image into a colored pencil sketch. Keep the colors soft and textured, showing the grain of the paper.",
	}
	Watercolor = Style{
		Key:      "watercolor",
		Label:    "Watercolor Sketch",
		Fragment: "Convert this image into a mixed media sketch with watercolor washes and ink outlines. Artistic and expressive.",
	}
)

var catalog = []Style{Pencil, Charcoal, Ink, ColoredPencil, Watercolor}

// All returns the catalog in display order. The returned slice is a copy.
func All() []Style {
	out := make([]Style, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the style a new session starts with.
func Default() Style {
	return catalog[0]
}

// Lookup finds a style by key or label, ignoring case and surrounding space.
func Lookup(name string) (Style, error) {
	n := strings.TrimSpace(name)
	for _, s := range catalog {
		if strings.EqualFold(n, s.Key) || strings.EqualFold(n, s.Label) {
			return s, nil
		}
	}
	return Style{}, fmt.Errorf("unknown style %q (want one of %s)", name, strings.Join(Keys(), ", "))
}

// Keys returns the CLI keys of every style, in display order.
func Keys() []string {
	keys := make([]string, len(catalog))
	for i, s := range catalog {
		keys[i] = s.Key
	}
	return keys
}

// Index returns the catalog position of s, or -1.
func Index(s Style) int {
	for i, c := range catalog {
		if c.Key == s.Key {
			return i
		}
	}
	return -1
}
