package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketCache/internal/model"
)

func TestBrapiFetcher_FetchPriceSeries(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/quote/PETR4", r.URL.Path)
		assert.Equal(t, "max", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(`{"results":[{"symbol":"PETR4","historicalDataPrice":[
			{"date":1672837200,"open":23,"high":24,"low":22,"close":23.5,"volume":10,"adjustedClose":21.0},
			{"date":1672750800,"open":22,"high":23,"low":21,"close":22.5,"volume":9},
			{"date":1675429200,"open":25,"high":26,"low":24,"close":25.5,"volume":11}
		]}]}`))
	}))
	defer srv.Close()

	f := NewBrapiFetcher(WithBaseURL(srv.URL), WithToken("secret"))
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	bars, err := f.FetchPriceSeries(context.Background(), "PETR4", start, end, model.Daily)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", auth)
	require.Len(t, bars, 2, "bars outside the window are trimmed")
	assert.Equal(t, time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, 22.5, bars[0].Close)
	assert.Equal(t, 21.0, bars[1].Close, "adjusted close wins when present")
}

func TestBrapiFetcher_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":true,"message":"Nao encontramos a acao"}`))
	}))
	defer srv.Close()

	f := NewBrapiFetcher(WithBaseURL(srv.URL))
	_, err := f.FetchPriceSeries(context.Background(), "XXXX", time.Time{}, time.Now(), model.Daily)
	assert.ErrorContains(t, err, "Nao encontramos")

	_, err = f.FetchPriceSeries(context.Background(), "PETR4", time.Time{}, time.Now(), model.Interval5m)
	assert.Error(t, err)
}

func TestBrapiFetcher_Directory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/available":
			_, _ = w.Write([]byte(`{"indexes":["^BVSP"],"stocks":["PETR4","VALE3","BOVA11"]}`))
		case "/api/quote/list":
			assert.Equal(t, "close", r.URL.Query().Get("sortBy"))
			_, _ = w.Write([]byte(`{"stocks":[
				{"stock":"PETR4","sector":"Energy Minerals"},
				{"stock":"PRIO3","sector":"Energy Minerals"},
				{"stock":"VALE3","sector":"Non-Energy Minerals"},
				{"stock":"XPTO11","sector":null}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewBrapiFetcher(WithBaseURL(srv.URL))
	tickers, err := f.AvailableTickers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"PETR4", "VALE3", "BOVA11"}, tickers)

	sectors, err := f.Sectors(context.Background())
	require.NoError(t, err)
	assert.Len(t, sectors, 2)
	assert.Equal(t, []string{"PETR4", "PRIO3"}, sectors["Energy Minerals"])
}
