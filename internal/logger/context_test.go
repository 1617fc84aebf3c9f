package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	stored := zap.New(core)

	ctx := ContextWithLogger(context.Background(), stored)

	got := FromContext(ctx, zap.NewNop())
	got.Info("hello")

	if logs.Len() != 1 {
		t.Fatalf("expected the stored logger to receive the entry, got %d entries", logs.Len())
	}
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	def := zap.New(core)

	got := FromContext(context.Background(), def)
	got.Info("hello")

	if logs.Len() != 1 {
		t.Fatalf("expected the fallback logger to receive the entry, got %d entries", logs.Len())
	}
}

func TestFromContext_NopWhenNothingAvailable(t *testing.T) {
	got := FromContext(context.Background(), nil)
	if got == nil {
		t.Fatal("expected a usable logger, got nil")
	}
	got.Info("must not panic")
}
