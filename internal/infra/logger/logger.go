package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log é o logger global. Antes do Init escreve JSON no stderr.
var Log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configura nível e formato. pretty=true usa ConsoleWriter (desenvolvimento).
func Init(level string, pretty bool) {
	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	Log = zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(ParseLevel(level))

	Log.Info().Str("level", Log.GetLevel().String()).Msg("logger inicializado")
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Discard silencia o logger (testes).
func Discard() {
	Log = zerolog.Nop()
}
