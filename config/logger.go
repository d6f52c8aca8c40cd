package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/asottile-archive/css-explore/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare assembles the program logger: console output split between stdout
// (info and below) and stderr (errors), plus an optional file log. An active
// debug report forces the file log to debug level so the full run ends up
// in the report archive.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {

	var (
		consoleOn  bool
		minConsole zapcore.Level
	)
	switch conf.ConsoleLogger.Level {
	case "debug":
		consoleOn, minConsole = true, zapcore.DebugLevel
	case "normal":
		consoleOn, minConsole = true, zapcore.InfoLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(os.Stdout, false), zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return consoleOn && minConsole <= lvl && lvl < zapcore.ErrorLevel
			})),
		zapcore.NewCore(consoleEncoder(os.Stderr, true), zapcore.Lock(os.Stderr),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return consoleOn && lvl >= zapcore.ErrorLevel
			})),
	}

	level := conf.FileLogger.Level
	if rpt != nil {
		// the report wants everything the program can say
		level = "debug"
	}

	var redirected string
	if level == "debug" || level == "normal" {
		fc, name, err := conf.fileCore(level, rpt)
		if err != nil {
			return nil, err
		}
		cores = append(cores, fc)
		redirected = name
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(misc.GetAppName())
	if len(redirected) != 0 {
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log, nil
}

// fileCore opens the file log destination, truncating any previous run, and
// arranges for runtime crash output to land next to it. When the destination
// is not writable the log is redirected to a temporary file and its name is
// returned.
func (conf *LoggingConfig) fileCore(level string, rpt *Report) (zapcore.Core, string, error) {
	enabler := zap.NewAtomicLevelAt(zap.InfoLevel)
	if level == "debug" {
		enabler = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	capturePanics(conf.FileLogger.Destination, rpt)

	var redirected string
	f, err := os.Create(conf.FileLogger.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
			return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
		}
		redirected = f.Name()
	}
	rpt.Store("final.log", f.Name())

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(enc, zapcore.Lock(f), enabler), redirected, nil
}

// capturePanics points runtime crash output at a panic log next to the file
// log so the debug report can pick it up. Failure to set it up is not fatal.
func capturePanics(destination string, rpt *Report) {
	var (
		f   *os.File
		err error
	)
	if len(destination) > 0 {
		f, err = os.Create(filepath.Join(filepath.Dir(destination), misc.GetAppName()+"-panic.log"))
	}
	if f == nil || err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			return
		}
	}
	debug.SetCrashOutput(f, debug.CrashOptions{})
	rpt.Store("panic.log", f.Name())
	f.Close()
}

// consoleEncoder builds a console encoder for the stream, with colors when
// the stream supports them. The stderr side drops zap's verbose error
// representation, the short message is enough on a terminal.
func consoleEncoder(stream *os.File, shortErrors bool) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	if shortErrors {
		return stderrEncoder{zapcore.NewConsoleEncoder(ec)}
	}
	return zapcore.NewConsoleEncoder(ec)
}

type stderrEncoder struct {
	zapcore.Encoder
}

func (c stderrEncoder) Clone() zapcore.Encoder {
	return stderrEncoder{c.Encoder.Clone()}
}

func (c stderrEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	trimmed := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			f.Interface = errors.New(f.Interface.(error).Error())
		}
		trimmed = append(trimmed, f)
	}
	return c.Encoder.EncodeEntry(ent, trimmed)
}
