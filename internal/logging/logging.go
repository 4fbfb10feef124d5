// Package logging builds the zap logger used by the agglom binary and
// adapts it to the library hooks (merge observer, badger logger).
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/agglom/agglom"
)

// EnvProduction selects JSON output; anything else gets the console encoder.
const EnvProduction = "production"

// New returns a production logger for env "production" and a development
// logger otherwise, at the given level ("debug", "info", "warn", "error").
func New(env, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var cfg zap.Config
	if env == EnvProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// MergeObserver logs every merge at debug level under the given run fields.
// The level check happens once per merge, so a non-debug logger pays only
// for the Check call.
func MergeObserver(log *zap.Logger) agglom.Observer {
	return func(m agglom.Merge) {
		if ce := log.Check(zap.DebugLevel, "merge"); ce != nil {
			ce.Write(
				zap.Int("step", m.Step),
				zap.Int("node", m.Node),
				zap.Int("left", m.Left),
				zap.Int("right", m.Right),
				zap.Float64("distance", m.Distance),
				zap.Float64("branch_left", m.BranchLeft),
				zap.Float64("branch_right", m.BranchRight),
				zap.Int("size", m.Size),
			)
		}
	}
}

// BadgerLogger adapts zap to badger's Logger interface
// (Errorf, Warningf, Infof, Debugf).
type BadgerLogger struct {
	s *zap.SugaredLogger
}

// Badger returns a badger logger writing under the "badger" name.
func Badger(log *zap.Logger) *BadgerLogger {
	return &BadgerLogger{s: log.Named("badger").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (b *BadgerLogger) Errorf(format string, args ...any)   { b.s.Errorf(strings.TrimSpace(format), args...) }
func (b *BadgerLogger) Warningf(format string, args ...any) { b.s.Warnf(strings.TrimSpace(format), args...) }
func (b *BadgerLogger) Infof(format string, args ...any)    { b.s.Infof(strings.TrimSpace(format), args...) }
func (b *BadgerLogger) Debugf(format string, args ...any)   { b.s.Debugf(strings.TrimSpace(format), args...) }
