package generate

import "errors"

var (
	// ErrGeneration matches every *GenerationError via errors.Is.
	ErrGeneration = errors.New("sketch generation failed")

	// ErrNoImage means the service answered without an image part.
	ErrNoImage = errors.New("no image data found in the response")

	// ErrMissingAPIKey means no credential was configured.
	ErrMissingAPIKey = errors.New("API key is not set; export GEMINI_API_KEY (or API_KEY) before generating")
)

// GenerationError is the single error kind returned by Synthesize.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return ErrGeneration.Error()
	case e.Message == "":
		return e.Err.Error()
	case e.Err == nil:
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrGeneration) true for any GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

func genErr(msg string, err error) error {
	return &GenerationError{Message: msg, Err: err}
}
