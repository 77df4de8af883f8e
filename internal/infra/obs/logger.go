package obs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger builds the process-wide slog logger. Local environments get
// tinted human-readable output at debug level; everything else emits
// JSON lines suitable for log shipping.
func NewLogger(env string) *slog.Logger {
	switch env {
	case "dev", "local", "test":
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
}
