package model

// InstrumentKind tells which upstream path serves a base instrument.
type InstrumentKind int

const (
	KindEquity InstrumentKind = iota
	KindCurrency
	KindOvernightRate
	KindGDP
	KindMacroSeries
)

func (k InstrumentKind) String() string {
	switch k {
	case KindCurrency:
		return "currency"
	case KindOvernightRate:
		return "overnight_rate"
	case KindGDP:
		return "gdp"
	case KindMacroSeries:
		return "macro_series"
	default:
		return "equity"
	}
}

// TransformKind is a derived series computed from a close column.
type TransformKind int

const (
	TransformNone TransformKind = iota
	TransformReturn
	TransformLogReturn
	TransformCumulativeReturn
	TransformCumulativeLogReturn
	TransformVolatility
)

var transformPrefixes = map[TransformKind]string{
	TransformReturn:              "RET",
	TransformLogReturn:           "LRET",
	TransformCumulativeReturn:    "CRET",
	TransformCumulativeLogReturn: "CLRET",
	TransformVolatility:          "VOL",
}

// Prefix is the symbol prefix selecting the transform, empty for TransformNone.
func (t TransformKind) Prefix() string { return transformPrefixes[t] }

// TransformByPrefix resolves the fixed prefixes; VOL is parameterised and handled by the classifier.
func TransformByPrefix(prefix string) (TransformKind, bool) {
	for k, p := range transformPrefixes {
		if p == prefix && k != TransformVolatility {
			return k, true
		}
	}
	return TransformNone, false
}

// SymbolRequest is a requested symbol broken into what has to be fetched and derived.
type SymbolRequest struct {
	Symbol          string
	Base            string
	Transform       TransformKind
	Window          int // rolling window, volatility only
	PaddingDays     int // calendar days fetched before the requested open
	Kind            InstrumentKind
	SeriesCode      int // SGS code for rate, GDP and macro kinds
	NeedsPriceFetch bool
}

// Output is the column holding the request's close-like series.
func (r SymbolRequest) Output() Column {
	if r.Transform == TransformNone {
		return RawColumn(r.Base, FieldClose)
	}
	return DerivedColumn(r.Transform, r.Window, r.Base)
}
