package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldApp names the tool a log entry belongs to (tracker, placement, resume).
	FieldApp = "app"
	// FieldStoreKey is the record store key an operation reads or writes.
	FieldStoreKey = "store_key"
	// FieldBackend is the record store backend in use.
	FieldBackend = "store_backend"
)

const (
	AppTracker   = "tracker"
	AppPlacement = "placement"
	AppResume    = "resume"
	AppProof     = "proof"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
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

// CommonFields returns the app and store key fields. Empty values are skipped.
func CommonFields(app, key string) []zap.Field {
	return StringFields(
		StringField{Key: FieldApp, Value: app},
		StringField{Key: FieldStoreKey, Value: key},
	)
}

// ForApp returns logger tagged with the app name.
func ForApp(logger *zap.Logger, app string) *zap.Logger {
	return WithFields(logger, CommonFields(app, "")...)
}
