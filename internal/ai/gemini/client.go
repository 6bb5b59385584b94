package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/brandmatch/internal/utils"
)

const (
	defaultModel           = "gemini-2.5-flash"
	defaultMaxOutputTokens = 100
	defaultTimeout         = 15 * time.Second
	defaultMaxLogLength    = 200
)

// contentModels is the subset of *genai.Models used by the generator.
type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config describes a Gemini generator.
type Config struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	Timeout         time.Duration
	MaxLogLength    int
}

// Generator wraps the Google GenAI client to provide single-shot prompt completions.
type Generator struct {
	models          contentModels
	model           string
	maxOutputTokens int32
	timeout         time.Duration
	maxLogLen       int
	logger          *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, cfg, logger), nil
}

func newGenerator(models contentModels, cfg Config, logger *zap.Logger) *Generator {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 || maxTokens > defaultMaxOutputTokens {
		maxTokens = defaultMaxOutputTokens
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		models:          models,
		model:           model,
		maxOutputTokens: int32(maxTokens),
		timeout:         timeout,
		maxLogLen:       maxLogLen,
		logger:          logger,
	}
}

// Generate sends the prompt to Gemini once and returns the joined text parts.
// An empty answer is reported as an error.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	cfg := &genai.GenerateContentConfig{MaxOutputTokens: g.maxOutputTokens}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	output := extractText(resp)
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	g.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
		// Only the first candidate with text is used.
		if builder.Len() > 0 {
			break
		}
	}

	return strings.TrimSpace(builder.String())
}
