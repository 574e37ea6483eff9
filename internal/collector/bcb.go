package collector

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"MarketCache/internal/model"
)

const (
	bcbBaseURL    = "https://api.bcb.gov.br"
	bcbDateLayout = "02/01/2006"
)

// BCBFetcher implements MacroFetcher using the Banco Central do Brasil SGS API.
type BCBFetcher struct {
	requester
}

// NewBCBFetcher creates a new SGS fetcher.
func NewBCBFetcher(opts ...Option) *BCBFetcher {
	return &BCBFetcher{requester: newRequester("bcb", bcbBaseURL, opts)}
}

func (f *BCBFetcher) Name() string { return "bcb" }

type sgsValue struct {
	Data  string `json:"data"`
	Valor string `json:"valor"`
}

// FetchMacroSeries returns the published observations of an SGS series between start and end.
func (f *BCBFetcher) FetchMacroSeries(ctx context.Context, seriesID int, start, end time.Time) ([]model.Point, error) {
	path := fmt.Sprintf("/dados/serie/bcdata.sgs.%d/dados?formato=json&dataInicial=%s&dataFinal=%s",
		seriesID, start.Format(bcbDateLayout), end.Format(bcbDateLayout))

	var values []sgsValue
	if err := f.getJSON(ctx, path, &values); err != nil {
		return nil, err
	}

	points := make([]model.Point, 0, len(values))
	for _, v := range values {
		t, err := time.Parse(bcbDateLayout, v.Data)
		if err != nil {
			return nil, fmt.Errorf("bcb: series %d: bad date %q: %w", seriesID, v.Data, err)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(v.Valor), 64)
		if err != nil {
			return nil, fmt.Errorf("bcb: series %d: bad value %q: %w", seriesID, v.Valor, err)
		}
		points = append(points, model.Point{Time: t, Value: x})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}
