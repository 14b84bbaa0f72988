package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const LogFile = "launcher.log"

// Init points the global logger at a rotating file in dir plus stderr and
// any extra writers.
func Init(dir string, debug bool, extra ...io.Writer) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	writers := []io.Writer{
		&lumberjack.Logger{
			Filename:   filepath.Join(dir, LogFile),
			MaxSize:    1,
			MaxBackups: 2,
		},
		zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly},
	}
	writers = append(writers, extra...)

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(io.MultiWriter(writers...)).
		With().Timestamp().Caller().Logger()

	return nil
}
