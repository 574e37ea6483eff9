package collector

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dnaeon/go-vcr/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketCache/internal/model"
)

// Replays a real chart call. Skips when the cassette is absent and RECORD_CASSETTES != 1.
func TestYahooFetcher_Recorded(t *testing.T) {
	cassette := filepath.Join("testdata", "cassettes", "yahoo_petr4")
	if _, err := os.Stat(cassette + ".yaml"); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 to record: %s.yaml", cassette)
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(cassette), 0o755))
	}

	r, err := recorder.New(cassette)
	require.NoError(t, err)
	defer func() { _ = r.Stop() }()

	f := NewYahooFetcher(WithHTTPClient(&http.Client{Transport: r}))
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	bars, err := f.FetchPriceSeries(context.Background(), "PETR4.SA", start, end, model.Daily)
	require.NoError(t, err)
	assert.NotEmpty(t, bars)
	for _, b := range bars {
		assert.Greater(t, b.Close, 0.0)
	}
}
