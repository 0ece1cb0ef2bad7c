package generate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/sketchify-dev/sketchify/internal/imagedata"
	"github.com/sketchify-dev/sketchify/internal/style"
)

const (
	// DefaultModel is the Gemini image model used when none is configured.
	DefaultModel   = "gemini-2.5-flash-image"
	defaultTimeout = 2 * time.Minute
	maxTextPreview = 512
)

// ContentGenerator is the slice of the genai Models service the adapter needs.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options configures a Gemini adapter.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Gemini is the generation adapter backed by the Gemini API.
type Gemini struct {
	apiKey  string
	model   string
	timeout time.Duration

	mu     sync.Mutex
	models ContentGenerator
}

// NewGemini creates an adapter. The underlying client is created on first use.
func NewGemini(opts Options) *Gemini {
	model := strings.TrimPrefix(strings.TrimSpace(opts.Model), "models/")
	if model == "" {
		model = DefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gemini{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		timeout: timeout,
	}
}

// NewGeminiWithClient creates an adapter around an existing content generator.
func NewGeminiWithClient(models ContentGenerator, opts Options) *Gemini {
	g := NewGemini(opts)
	g.models = models
	return g
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string {
	return g.model
}

func (g *Gemini) client(ctx context.Context) (ContentGenerator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.models != nil {
		return g.models, nil
	}
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	g.models = c.Models
	return g.models, nil
}

// Synthesize sends the photo and the style prompt in one request and returns
// the first image in the response as a PNG data URI. Every failure is a
// *GenerationError. There are no retries.
func (g *Gemini) Synthesize(ctx context.Context, img imagedata.DataURI, st style.Style) (imagedata.DataURI, error) {
	if style.Index(st) < 0 {
		return "", genErr("unknown style", fmt.Errorf("%q is not in the catalog", st.Label))
	}
	mime, data, err := img.Decode()
	if err != nil {
		return "", genErr("invalid input image", err)
	}

	models, err := g.client(ctx)
	if err != nil {
		return "", genErr("", err)
	}

	prompt := BuildPrompt(st)
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Debug("generate content", "model", g.model, "style", st.Key, "mime", mime, "bytes", len(data))
	start := time.Now()
	resp, err := models.GenerateContent(callCtx, g.model, contents, cfg)
	if err != nil {
		return "", genErr("generation request failed", err)
	}
	log.Debug("generate content done", "elapsed", time.Since(start))

	out, err := firstImage(resp)
	if err != nil {
		return "", err
	}
	pngData, err := imagedata.ToPNG(out)
	if err != nil {
		return "", genErr("unusable image in response", err)
	}
	return imagedata.Encode(imagedata.PNG, pngData), nil
}

// firstImage returns the first inline image of the first candidate. Any text
// the model sent instead is surfaced in the error.
func firstImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	var text strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part == nil {
				continue
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}
	if s := strings.TrimSpace(text.String()); s != "" {
		if len(s) > maxTextPreview {
			s = s[:maxTextPreview] + "..."
		}
		return nil, genErr(fmt.Sprintf("model replied %q", s), ErrNoImage)
	}
	return nil, genErr("", ErrNoImage)
}
