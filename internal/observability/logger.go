package observability

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// ConfigureLogger sets the process-wide fiber logger level and output.
// Unknown levels fall back to info.
func ConfigureLogger(level string, out io.Writer) {
	if out != nil {
		log.SetOutput(out)
	}
	log.SetLevel(ParseLevel(level))
}

// ParseLevel maps a LOG_LEVEL value onto a fiber log level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
