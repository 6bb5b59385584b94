// Package outreach writes collaboration messages for ranked matches. A
// generative model is tried first; any failure falls back to a fixed template.
package outreach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/brandmatch/internal/ai"
	"github.com/spigell/brandmatch/internal/logger"
	"github.com/spigell/brandmatch/internal/model"
	"github.com/spigell/brandmatch/internal/utils"
)

const defaultMaxLogLength = 200

// Config tunes message rendering.
type Config struct {
	Currency     string
	MaxLogLength int
}

// Composer produces one outreach message per match.
type Composer struct {
	generator ai.Generator
	currency  string
	maxLogLen int
	logger    *zap.Logger
}

// NewComposer returns a composer. A nil generator disables generated
// messages and every Compose call returns the fallback template.
func NewComposer(generator ai.Generator, cfg Config, log *zap.Logger) *Composer {
	currency := strings.TrimSpace(cfg.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Composer{
		generator: generator,
		currency:  currency,
		maxLogLen: maxLogLen,
		logger:    log,
	}
}

// Enabled reports whether a generative collaborator is configured.
func (c *Composer) Enabled() bool {
	return c.generator != nil
}

// Compose returns the message for requester -> counterpart. It never fails:
// errors from the generator are logged and replaced by the template.
func (c *Composer) Compose(ctx context.Context, direction model.Direction, requester, counterpart model.Profile) model.OutreachMessage {
	fields := logger.MatchFields(direction.String(), counterpart.Name)

	if c.generator == nil {
		c.logger.Debug("ai generation is disabled; using fallback message", fields...)
		return c.fallback(direction, requester, counterpart)
	}

	prompt := buildPrompt(direction, requester, counterpart, c.currency)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("ai message generation unavailable; using fallback message",
			append(fields, zap.Error(err))...,
		)
		return c.fallback(direction, requester, counterpart)
	}

	c.logger.Debug("ai message generated",
		append(fields, zap.String("message_preview", utils.TruncateForLog(text, c.maxLogLen)))...,
	)

	return model.OutreachMessage{Text: text, Source: model.SourceGenerated}
}

// generate makes the single attempt. Panics inside the generator are
// converted into errors so that the fallback path always runs.
func (c *Composer) generate(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("generator panicked: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	text = cleanGenerated(raw)
	if text == "" {
		return "", errors.New("generator returned an empty message")
	}

	return text, nil
}

func (c *Composer) fallback(direction model.Direction, requester, counterpart model.Profile) model.OutreachMessage {
	return model.OutreachMessage{
		Text:   fallbackMessage(direction, requester, counterpart, c.currency),
		Source: model.SourceFallback,
	}
}

// cleanGenerated strips code fences and wrapping quotes models like to add.
func cleanGenerated(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```text")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}
