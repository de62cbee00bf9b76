package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"donations/internal/adapters/out/kafka"
	"donations/internal/adapters/out/postgres/testdb"
	"donations/internal/adapters/out/stockit"
	"donations/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Stockit: StockitConfig{BaseURL: "http://stockit.local", Timeout: time.Second},
		Jobs: JobsConfig{
			PruneSpec:           "0 */15 * * * *",
			PruneBatch:          10,
			SyncIssueReportSpec: "0 * * * * *",
		},
	}
}

func TestCompositionRoot_WiresWithoutOptionalAdapters(t *testing.T) {
	root, err := NewCompositionRoot(testConfig(), testdb.NewSQLite(t), logger.Nop())
	require.NoError(t, err)
	defer root.Close()

	assert.IsType(t, &stockit.Client{}, root.mirror)
	assert.IsType(t, kafka.DiscardPublisher{}, root.publisher)

	e := root.CreateHTTPServer().NewEcho()
	for _, path := range []string{"/health", "/metrics", "/api/v1/orders/summary"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCompositionRoot_WrapsMirrorWhenRedisConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Redis = RedisConfig{URL: "redis://localhost:6379/0", LinkTTL: time.Hour}

	root, err := NewCompositionRoot(cfg, testdb.NewSQLite(t), logger.Nop())
	require.NoError(t, err)

	assert.IsType(t, &stockit.IdempotentMirror{}, root.mirror)
	assert.NoError(t, root.Close())
}

func TestCompositionRoot_RejectsBadRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.URL = "mysql://nope"

	_, err := NewCompositionRoot(cfg, testdb.NewSQLite(t), logger.Nop())
	require.Error(t, err)
}

func TestCompositionRoot_JobManagerStarts(t *testing.T) {
	root, err := NewCompositionRoot(testConfig(), testdb.NewSQLite(t), logger.Nop())
	require.NoError(t, err)
	defer root.Close()

	jm := root.CreateJobManager()
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
