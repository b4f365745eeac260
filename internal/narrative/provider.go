package narrative

import (
	"context"
	"time"

	"finhealth/internal/model"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Supported narrative providers
const (
	ProviderNone   = ""
	ProviderGemini = "gemini"
	ProviderHTTP   = "http"
)

// Narrator generates the prose sections for one report
type Narrator interface {
	Narrate(ctx context.Context, input model.NarrativeInput) (model.Narrative, error)
}

// Options selects and configures a provider
type Options struct {
	Provider    string
	GeminiKey   string
	GeminiModel string
	Endpoint    string
	Token       string
	Timeout     time.Duration
	MaxRetries  int
}

// New builds the configured narrator. It returns nil when no provider is selected.
func New(ctx context.Context, opts Options, log zerolog.Logger) (Narrator, error) {
	switch opts.Provider {
	case ProviderNone:
		return nil, nil
	case ProviderGemini:
		g, err := NewGeminiNarrator(ctx, opts.GeminiKey, opts.GeminiModel, log)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderHTTP:
		return NewHTTPNarrator(HTTPOptions{
			Endpoint:   opts.Endpoint,
			Token:      opts.Token,
			Timeout:    opts.Timeout,
			MaxRetries: opts.MaxRetries,
		}, log), nil
	default:
		return nil, errors.Errorf("unknown narrative provider %q", opts.Provider)
	}
}
