// Package bootstrap runs the shared startup pipeline: logger first, then
// whatever the application wires on top.
package bootstrap

import (
	"fmt"

	coreconfig "github.com/metrica-project/metrica-bot/core/config"
	"github.com/metrica-project/metrica-bot/core/logger"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
}

// Run initializes shared infrastructure in dependency order.
func Run(opts Options) error {
	if opts.Config == nil {
		return fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.Init
	}
	if err := loggerInit(opts.Config); err != nil {
		return fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	return nil
}
