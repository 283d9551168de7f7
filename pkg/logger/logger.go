package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env     string // development -> consola legible; otro -> JSON
	Level   string // trace, debug, info, warn, error; vacío o inválido = info
	Service string // se agrega como campo "service" en cada línea
}

// Logger zerolog con los campos comunes de la aplicación. Embebe zerolog.Logger, así que
// Info(), Warn(), Error() y Fatal() se usan directamente.
type Logger struct {
	zerolog.Logger
}

// New crea el logger sobre stdout.
func New(cfg Config) *Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter igual que New pero escribiendo en w (tests).
func NewWithWriter(cfg Config, w io.Writer) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	ctx := zerolog.New(w).With().Timestamp()
	if cfg.Env == "development" {
		ctx = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).With().Timestamp().Caller()
	}
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger().Level(ParseLevel(cfg.Level))

	// librerías que usan el logger global escriben con la misma configuración
	log.Logger = zl

	return &Logger{Logger: zl}
}

// ParseLevel traduce el nivel textual; lo desconocido cae en info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Component sublogger con el campo component, para inyectar en casos de uso y adaptadores.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Zerolog devuelve el logger sin envoltorio.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.Logger
}
