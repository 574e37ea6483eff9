// Package classifier turns requested symbols such as "VOL20_PETR4" or
// "USD/BRL" into the base instrument, transform and upstream kind they name.
package classifier

import (
	"strconv"
	"strings"

	"MarketCache/internal/model"
)

// Classify parses symbol with the default volatility padding.
func Classify(symbol string) model.SymbolRequest {
	return ClassifyWith(symbol, model.DefaultVolatilityPaddingDays)
}

// ClassifyWith parses symbol; a volatility request is padded by its window plus paddingDays.
// Unrecognised forms are plain equities without a transform.
func ClassifyWith(symbol string, paddingDays int) model.SymbolRequest {
	req := model.SymbolRequest{
		Symbol:          symbol,
		Base:            symbol,
		Kind:            model.KindEquity,
		NeedsPriceFetch: true,
	}

	segments := strings.Split(symbol, "_")
	if len(segments) > 1 {
		head, rest := segments[0], strings.Join(segments[1:], "_")
		if w, ok := volatilityWindow(head); ok {
			req.Transform = model.TransformVolatility
			req.Window = w
			req.PaddingDays = w + paddingDays
			req.Base = rest
		} else if kind, ok := model.TransformByPrefix(head); ok {
			req.Transform = kind
			req.Base = rest
		}
	}

	if strings.Contains(symbol, "/") {
		req.Kind = model.KindCurrency
		req.NeedsPriceFetch = false
		return req
	}

	baseSegments := strings.Split(req.Base, "_")
	last := baseSegments[len(baseSegments)-1]
	switch last {
	case "CDI":
		req.Kind = model.KindOvernightRate
		req.SeriesCode = CDICode
	case "PIBBR":
		req.Kind = model.KindGDP
		req.SeriesCode = PIBBRCode
	default:
		code, ok := sgsSeries[last]
		if !ok {
			return req
		}
		req.Kind = model.KindMacroSeries
		req.SeriesCode = code
	}
	req.NeedsPriceFetch = false
	return req
}

// volatilityWindow parses "VOL<digits>".
func volatilityWindow(seg string) (int, bool) {
	digits, ok := strings.CutPrefix(seg, "VOL")
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	w, err := strconv.Atoi(digits)
	if err != nil || w == 0 {
		return 0, false
	}
	return w, true
}
