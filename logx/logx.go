package logx

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LoggerOpts struct {
	Production bool
}

// Init configures the global logger. Production gets JSON at info level,
// everything else a console writer with caller information.
func Init(opts ...LoggerOpts) {
	var o LoggerOpts
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Production {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		return
	}
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Caller().Logger()
	log.Logger = log.Logger.Level(zerolog.DebugLevel)
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

// With returns a child logger carrying the given component tag.
func With(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
