package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/agglom/agglom"
	"github.com/katalvlaran/agglom/internal/logging"
)

func TestNew(t *testing.T) {
	log, err := logging.New("development", "debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = logging.New(logging.EnvProduction, "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	_, err = logging.New("development", "loud")
	require.Error(t, err)
}

func TestMergeObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := logging.MergeObserver(zap.New(core))
	obs(agglom.Merge{Step: 0, Node: 3, Left: 0, Right: 1, Distance: 2, BranchLeft: 1, BranchRight: 1, Size: 2})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "merge", entry.Message)
	assert.EqualValues(t, 3, entry.ContextMap()["node"])
	assert.EqualValues(t, 2.0, entry.ContextMap()["distance"])

	quiet, quietLogs := observer.New(zapcore.InfoLevel)
	logging.MergeObserver(zap.New(quiet))(agglom.Merge{})
	assert.Zero(t, quietLogs.Len())
}

func TestBadgerLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bl := logging.Badger(zap.New(core))
	bl.Infof("opened %s\n", "db")
	bl.Warningf("slow")
	bl.Debugf("hidden")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "opened db", logs.All()[0].Message)
	assert.Equal(t, "badger", logs.All()[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}
