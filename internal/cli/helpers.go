package cli

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/config"
)

// defaultLogger builds the console logger every mode uses, grounded on
// config.Config.CreateLogger's zerolog.ConsoleWriter setup.
func defaultLogger() zerolog.Logger {
	return config.New().CreateLogger()
}

// ctxBackground is the root context every mode runs under; modes are
// one-shot CLI invocations with no external cancellation source.
func ctxBackground() context.Context {
	return context.Background()
}
