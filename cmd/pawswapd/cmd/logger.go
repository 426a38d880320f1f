package cmd

import (
	"io"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// newLogger builds the process logger from the configured level and format.
func newLogger(cfg Config, w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := []log.Option{log.LevelOption(level)}
	if cfg.LogFormat == "json" {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(w, opts...).With("module", "pawswapd"), nil
}
