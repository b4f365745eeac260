package narrative

import (
	"context"

	"finhealth/internal/model"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model name is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the subset of *genai.Models used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiNarrator generates the narrative with the Gemini API.
type GeminiNarrator struct {
	models contentGenerator
	model  string
	log    zerolog.Logger
}

// NewGeminiNarrator creates a Gemini API client authenticated with apiKey.
func NewGeminiNarrator(ctx context.Context, apiKey, modelName string, log zerolog.Logger) (*GeminiNarrator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}
	return newGeminiNarrator(client.Models, modelName, log), nil
}

func newGeminiNarrator(models contentGenerator, modelName string, log zerolog.Logger) *GeminiNarrator {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiNarrator{
		models: models,
		model:  modelName,
		log:    log.With().Str("narrator", "gemini").Str("model", modelName).Logger(),
	}
}

func (g *GeminiNarrator) Narrate(ctx context.Context, input model.NarrativeInput) (model.Narrative, error) {
	prompt, err := BuildPrompt(input)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.3),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		g.log.Warn().Err(err).Str("workspace_id", input.WorkspaceID).Msg("narrative generation failed")
		return nil, errors.Wrapf(ErrNarrativeUnavailable, "gemini: %v", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, errors.Wrap(ErrNarrativeMalformed, "gemini: empty response")
	}
	return Parse(text)
}
