package sorter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Key is one normalized comparison value within a row's composite sort key.
// Within one file a field's kind is fixed, so keys compare against keys of
// the same kind.
type Key struct {
	kind FieldType
	str  string
	num  float64
	t    time.Time
}

// SortValue converts a raw cell into a comparable Key. It is total: empty
// and unparsable values map to sentinels that sort before every valid value
// (empty string for text, -Inf for number, the zero instant for date).
func SortValue(raw string, ft FieldType) Key {
	v := strings.TrimSpace(raw)
	if v == "" {
		switch ft {
		case TypeNumber:
			return Key{kind: TypeNumber, num: math.Inf(-1)}
		case TypeDate:
			return Key{kind: TypeDate}
		default:
			return Key{kind: TypeText}
		}
	}

	switch ft {
	case TypeNumber:
		n, err := parseNumber(v)
		if err != nil {
			n = math.Inf(-1)
		}
		return Key{kind: TypeNumber, num: n}
	case TypeDate:
		t, err := dateparse.ParseAny(v)
		if err != nil {
			t = time.Time{}
		}
		return Key{kind: TypeDate, t: t}
	default:
		return Key{kind: TypeText, str: strings.ToLower(v)}
	}
}

// Compare returns -1, 0 or 1 ordering k against o.
func (k Key) Compare(o Key) int {
	switch k.kind {
	case TypeNumber:
		switch {
		case k.num < o.num:
			return -1
		case k.num > o.num:
			return 1
		default:
			return 0
		}
	case TypeDate:
		return k.t.Compare(o.t)
	default:
		return strings.Compare(k.str, o.str)
	}
}

// compareKeys orders two composite keys field by field, major to minor.
func compareKeys(a, b []Key) int {
	for i := range a {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// parseNumber parses a decimal with either a period or a comma separator.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
