package libs

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// Budget for a single gateway call. The pipeline makes one attempt per
// stage and falls back on timeout like any other failure.
const generateTimeout = 8 * time.Second

// Generator is the text-completion gateway used by the chat pipeline and the
// background jobs. Implementations must treat every call as best-effort:
// callers never retry.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, p := range resp.Candidates[0].Content.Parts {
			out.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(out.String()), nil
}

// Disabled returns a Generator that always fails, used when no API key is
// configured so every stage degrades to its documented fallback.
func Disabled() Generator {
	return disabledGenerator{}
}

type disabledGenerator struct{}

func (disabledGenerator) GenerateText(context.Context, string) (string, error) {
	return "", errors.New("gemini api key not configured")
}
