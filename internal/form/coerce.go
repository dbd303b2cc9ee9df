package form

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Number is numeric input as typed by the operator. It is only converted at
// submission, by the helpers below, so the fallback policy lives here.
type Number string

func IntNumber(i int) Number {
	return Number(strconv.Itoa(i))
}

func IntPtrNumber(p *int) Number {
	if p == nil {
		return ""
	}
	return IntNumber(*p)
}

func DecimalNumber(d decimal.Decimal) Number {
	return Number(d.String())
}

func NullDecimalNumber(d decimal.NullDecimal) Number {
	if !d.Valid {
		return ""
	}
	return DecimalNumber(d.Decimal)
}

func (n Number) text() string {
	return strings.ReplaceAll(strings.TrimSpace(string(n)), ",", ".")
}

func (n Number) IsBlank() bool {
	return n.text() == ""
}

func (n Number) parse() (decimal.Decimal, bool) {
	t := n.text()
	if t == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

var (
	minInt = decimal.NewFromInt(math.MinInt32)
	maxInt = decimal.NewFromInt(math.MaxInt32)
)

// parseInt truncates fractions. Values outside the storefront's integer
// columns do not parse.
func (n Number) parseInt() (int, bool) {
	d, ok := n.parse()
	if !ok {
		return 0, false
	}
	d = d.Truncate(0)
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// Int coerces to an integer, truncating fractions; unparsable or out of range
// input yields def.
func (n Number) Int(def int) int {
	i, ok := n.parseInt()
	if !ok {
		return def
	}
	return i
}

// OptionalInt is Int for nullable fields: blank or unparsable input is nil.
func (n Number) OptionalInt() *int {
	i, ok := n.parseInt()
	if !ok {
		return nil
	}
	return &i
}

// Decimal coerces to a decimal; unparsable input yields def.
func (n Number) Decimal(def decimal.Decimal) decimal.Decimal {
	d, ok := n.parse()
	if !ok {
		return def
	}
	return d
}

// NullDecimal is Decimal for nullable fields.
func (n Number) NullDecimal() decimal.NullDecimal {
	d, ok := n.parse()
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Valid reports whether the input is blank or a finite number.
func (n Number) Valid() bool {
	if n.IsBlank() {
		return true
	}
	_, ok := n.parse()
	return ok
}

// UnmarshalJSON accepts JSON numbers, strings and null.
func (n *Number) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*n = ""
	case string:
		*n = Number(t)
	case float64:
		*n = Number(string(b))
	default:
		return fmt.Errorf("number: unexpected %T", v)
	}
	return nil
}

// datetime-local input layout
const dateInputLayout = "2006-01-02T15:04"

// parseDateInput accepts RFC 3339 and datetime-local input; blank is nil.
func parseDateInput(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, dateInputLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

func formatDateInput(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(dateInputLayout)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n", "":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// ParseList splits comma separated input, dropping blanks.
func ParseList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
