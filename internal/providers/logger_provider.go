package providers

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"rtsd/internal/structures"
)

type TypeEnum string

const (
	TypeApp   TypeEnum = "app"
	TypeHTTP  TypeEnum = "http"
	TypeFetch TypeEnum = "fetch"
)

type Logger interface {
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Errorf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

// LogProvider writes one log file per type (app.log, http.log, fetch.log)
// so access noise never drowns the application log. In debug mode the app
// log is mirrored to the console as well.
type LogProvider struct {
	files   []*os.File
	loggers map[TypeEnum]*zerolog.Logger
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]*zerolog.Logger)}
	for _, t := range []TypeEnum{TypeApp, TypeHTTP, TypeFetch} {
		path := filepath.Join(conf.Logger.Dir, string(t)+".log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
		if err != nil {
			lp.Close()
			return nil, err
		}
		lp.files = append(lp.files, file)

		var w io.Writer = file
		if conf.Debug && t == TypeApp {
			w = zerolog.MultiLevelWriter(file, zerolog.NewConsoleWriter())
		}
		lg := zerolog.New(w).Level(level).With().Timestamp().Logger()
		lp.loggers[t] = &lg
	}
	return lp, nil
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.loggers[t].Debug().Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.loggers[t].Info().Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.loggers[t].Warn().Msgf(format, args...)
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.loggers[t].Error().Msgf(format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.loggers[t].Fatal().Msgf(format, args...)
}

func (l *LogProvider) Close() {
	for _, f := range l.files {
		_ = f.Close()
	}
}
