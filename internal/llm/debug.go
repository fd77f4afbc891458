package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino-ext/devops"

	"github.com/arkline/fxquant/config"
)

// Debugger starts the eino visual debug server when enabled in config.
type Debugger struct {
	config *config.Config
	ctx    context.Context
}

func NewDebugger(cfg *config.Config) *Debugger {
	return &Debugger{
		config: cfg,
		ctx:    context.Background(),
	}
}

func (d *Debugger) Initialize() error {
	if !d.config.EinoDebugEnabled {
		return nil
	}

	if d.config.Debug {
		log.Printf("[Debug] Initializing eino visual debug plugin on port %d", d.config.EinoDebugPort)
	}

	if err := devops.Init(d.ctx); err != nil {
		return fmt.Errorf("failed to initialize eino debug plugin: %w", err)
	}

	if d.config.Debug {
		log.Printf("[Debug] Debug server listening at http://localhost:%d", d.config.EinoDebugPort)
	}

	return nil
}

func (d *Debugger) IsEnabled() bool {
	return d.config.EinoDebugEnabled
}

func (d *Debugger) DebugURL() string {
	if !d.config.EinoDebugEnabled {
		return ""
	}
	return fmt.Sprintf("http://localhost:%d", d.config.EinoDebugPort)
}
