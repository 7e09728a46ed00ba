package observability

import (
	"testing"

	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.LevelDebug,
		"DEBUG":   log.LevelDebug,
		"trace":   log.LevelTrace,
		"warn":    log.LevelWarn,
		"warning": log.LevelWarn,
		"error":   log.LevelError,
		"info":    log.LevelInfo,
		"":        log.LevelInfo,
		"verbose": log.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}
