// internal/logutil/logutil.go
package logutil

import (
	"io"

	charmlog "github.com/charmbracelet/log"
)

// Options controls diagnostic logging for one tool invocation.
type Options struct {
	Quiet bool // raise the level to Warn
	JSON  bool // one JSON object per line instead of text
}

// New builds the per-invocation logger. Diagnostics go to stderr so that
// table output on stdout stays machine-readable.
func New(w io.Writer, o Options) *charmlog.Logger {
	level := charmlog.InfoLevel
	if o.Quiet {
		level = charmlog.WarnLevel
	}
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: false,
		Level:           level,
	})
	if o.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return l
}
