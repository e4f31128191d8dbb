// Package cli implements the bomctl command-line interface.
//
// This package provides commands for building and inspecting BOM trees,
// aggregating statistics, diffing versions, dry-running attach validation,
// browsing a tree interactively, and exporting structures as DOT or SVG.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Assemble a snapshot into a tree, roll up costs, and print it
//   - stats: Aggregate statistics over a snapshot
//   - diff: Compute a classified difference between two snapshots
//   - check: Dry-run the cycle guard for a proposed attach
//   - attach/update/deactivate: Mutate a snapshot through the node store
//   - browse: Navigate a tree interactively (expand/collapse)
//   - export: Emit DOT or SVG for a tree or the product graph
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
)

// appName is the application name used for config discovery and display.
const appName = "bomctl"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Limits bom.Limits
}

// New creates a new CLI instance with a default logger and default engine
// limits. A config file, when present, overrides the limits in RootCommand's
// PersistentPreRunE.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Limits: bom.DefaultLimits(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// progress tracks the start time of an operation and logs completion with
// the elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since the tracker was created.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to the
// package default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
