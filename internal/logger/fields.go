package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured log keys shared across packages.
const (
	FieldProvider     = "ai_provider"
	FieldModel        = "ai_model"
	FieldDirection    = "direction"
	FieldCounterpart  = "counterpart"
	FieldFit          = "fit"
	FieldAuthenticity = "authenticity"
)

// StringField is a string-valued key/value pair.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts pairs into zap fields. Pairs with an empty key or
// value are dropped.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithCommonFields tags logger with the generative provider and model.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)...)
}

// MatchFields identifies one requester/counterpart pair.
func MatchFields(direction, counterpart string) []zap.Field {
	return StringFields(
		StringField{Key: FieldDirection, Value: direction},
		StringField{Key: FieldCounterpart, Value: counterpart},
	)
}

// ScoreFields renders a fit score and an optional authenticity score.
func ScoreFields(fit int, authenticity *int) []zap.Field {
	fields := []zap.Field{zap.Int(FieldFit, fit)}
	if authenticity != nil {
		fields = append(fields, zap.Int(FieldAuthenticity, *authenticity))
	}
	return fields
}
