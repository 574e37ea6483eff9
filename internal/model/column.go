package model

import "strconv"

// Field is one raw OHLCV field.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

// OHLCVFields lists the raw fields in presentation order.
var OHLCVFields = []Field{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// ParseField accepts a single raw field name.
func ParseField(s string) (Field, bool) {
	for _, f := range OHLCVFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Column identifies one series of the merged table. A raw column has
// Transform == TransformNone; a derived column always carries FieldClose.
type Column struct {
	Base      string
	Field     Field
	Transform TransformKind
	Window    int
}

// RawColumn is the column of field f fetched for base.
func RawColumn(base string, f Field) Column {
	return Column{Base: base, Field: f}
}

// DerivedColumn is the output column of a transform over base's close.
func DerivedColumn(kind TransformKind, window int, base string) Column {
	if kind != TransformVolatility {
		window = 0
	}
	return Column{Base: base, Field: FieldClose, Transform: kind, Window: window}
}

// Derived reports whether the column is computed rather than fetched.
func (c Column) Derived() bool { return c.Transform != TransformNone }

// Name encodes the column as <BASE>_<field> or <PREFIX><window>_<BASE>_close.
func (c Column) Name() string {
	if !c.Derived() {
		return c.Base + "_" + string(c.Field)
	}
	prefix := c.Transform.Prefix()
	if c.Transform == TransformVolatility {
		prefix += strconv.Itoa(c.Window)
	}
	return prefix + "_" + c.Base + "_" + string(FieldClose)
}

func (c Column) String() string { return c.Name() }
