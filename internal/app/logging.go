package app

import (
	"io"
	"os"

	"github.com/dshills/selnav/internal/config"
	"github.com/dshills/selnav/internal/logging"
)

// NewLogger builds the application logger from cfg. With a log file the
// output is size-rotated; otherwise it goes to stderr, or nowhere when
// interactive is set because the terminal UI owns the screen. The returned
// closer must be closed on exit.
func NewLogger(cfg config.LogConfig, interactive bool) (*logging.Logger, io.Closer) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	switch {
	case cfg.File != "":
		f := logging.OpenFile(logging.FileOptions{
			Path:       cfg.File,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
		out, closer = f, f
	case interactive:
		out = io.Discard
	}
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Level),
		Output: out,
		Prefix: "selnav",
	})
	return log, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
