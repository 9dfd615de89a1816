package lightatlas

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled is false at every level, so the
// calibrator and grid never build their attrs unless a logger is installed.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr is read by Calibrator.Estimate, Grid.allocate and the texture
// uploader, possibly from several goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for lightatlas and its sub-packages.
// By default, lightatlas produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by lightatlas:
//   - [slog.LevelDebug]: grid reallocation, engine configuration
//   - [slog.LevelInfo]: calibration results
//   - [slog.LevelWarn]: calibration over budget
//
// The update kernel never logs.
//
// Example: report only a machine too slow for the light atlas.
//
//	lightatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//	    &slog.HandlerOptions{Level: slog.LevelWarn})))
//	q, _, err := lightatlas.NewCalibrator().Estimate()
//	// On ErrBudgetExceeded the warning carries the budget, the estimate
//	// and the degraded quality q the atlas will run with.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by lightatlas.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
