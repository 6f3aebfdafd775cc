package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func Test_newLogger(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    zerolog.Level
	}{
		{name: "default", verbose: false, want: zerolog.InfoLevel},
		{name: "verbose", verbose: true, want: zerolog.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			logger := newLogger(buf, "bitpack", tt.verbose)
			assert.Equal(t, tt.want, logger.GetLevel())
			assert.Equal(t, tt.want, log.Logger.GetLevel())

			logger.Info().Msg("hello")
			assert.Contains(t, buf.String(), "hello")
			assert.Contains(t, buf.String(), "bitpack")
		})
	}
}
