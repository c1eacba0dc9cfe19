package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  app  ", Value: "  tracker  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "app" || fields[0].String != "tracker" {
		t.Fatalf("unexpected app field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}

func TestCommonFields(t *testing.T) {
	fields := CommonFields("  placement  ", "placement_analysis_history")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldApp || fields[0].String != "placement" {
		t.Fatalf("unexpected app field: %+v", fields[0])
	}

	if fields[1].Key != FieldStoreKey || fields[1].String != "placement_analysis_history" {
		t.Fatalf("unexpected key field: %+v", fields[1])
	}

	if empty := CommonFields("", ""); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestForApp(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	ForApp(zap.New(core), AppResume).Info("saved")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldApp]; got != AppResume {
		t.Fatalf("expected app field %q, got %q", AppResume, got)
	}
	if _, ok := entries[0].ContextMap()[FieldStoreKey]; ok {
		t.Fatalf("blank store key must be omitted")
	}

	ForApp(nil, AppTracker).Info("no panic")
}

func TestConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		json       bool
		debug      bool
		encoding   string
		level      zapcore.Level
		withCaller bool
	}{
		{name: "console", encoding: "console", level: zapcore.InfoLevel},
		{name: "console debug", debug: true, encoding: "console", level: zapcore.DebugLevel, withCaller: true},
		{name: "json", json: true, encoding: "json", level: zapcore.InfoLevel, withCaller: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Config(tt.json, tt.debug)
			if cfg.Encoding != tt.encoding {
				t.Fatalf("encoding = %q, want %q", cfg.Encoding, tt.encoding)
			}
			if cfg.Level.Level() != tt.level {
				t.Fatalf("level = %s, want %s", cfg.Level.Level(), tt.level)
			}
			if (cfg.EncoderConfig.CallerKey != "") != tt.withCaller {
				t.Fatalf("caller key = %q, withCaller %v", cfg.EncoderConfig.CallerKey, tt.withCaller)
			}
			if cfg.OutputPaths[0] != "stderr" {
				t.Fatalf("logs must go to stderr, got %v", cfg.OutputPaths)
			}
		})
	}
}
