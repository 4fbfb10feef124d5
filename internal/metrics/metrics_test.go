package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/agglom/internal/metrics"
)

func TestObserveBuild(t *testing.T) {
	c := metrics.New(false)
	c.ObserveBuild("upgma", 5, 3*time.Millisecond)
	c.ObserveBuild("upgma", 3, time.Millisecond)
	c.ObserveBuild("nj", 1, 0)
	c.CacheHits.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.TreesBuilt.WithLabelValues("upgma")))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.Merges.WithLabelValues("upgma")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Merges.WithLabelValues("nj")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheHits))
	assert.Equal(t, 2, testutil.CollectAndCount(c.Duration))
}

func TestWriteTextfile(t *testing.T) {
	c := metrics.New(true)
	c.ObserveBuild("single", 4, time.Millisecond)

	path := filepath.Join(t.TempDir(), "agglom.prom")
	require.NoError(t, c.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `agglom_trees_built_total{linkage="single"} 1`)
	assert.Contains(t, string(b), `agglom_merges_total{linkage="single"} 3`)
	assert.Contains(t, string(b), "go_goroutines")

	require.Error(t, c.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")))
}
