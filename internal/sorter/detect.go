package sorter

import (
	"strings"

	"github.com/araddon/dateparse"
)

// typeSampleRows caps how many leading data rows feed auto type detection.
const typeSampleRows = 100

// detectThreshold is the share of parsable samples a type must strictly
// exceed. Exactly 80% does not qualify.
const detectThreshold = 0.8

// DetectFieldType infers a field's comparison type from sample values.
// Numbers are tried before dates; fields that are neither are text.
func DetectFieldType(samples []string) FieldType {
	nonEmpty := make([]string, 0, len(samples))
	for _, v := range samples {
		if s := strings.TrimSpace(v); s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return TypeText
	}

	numbers := 0
	for _, v := range nonEmpty {
		if _, err := parseNumber(v); err == nil {
			numbers++
		}
	}
	if float64(numbers)/float64(len(nonEmpty)) > detectThreshold {
		return TypeNumber
	}

	dates := 0
	for _, v := range nonEmpty {
		if _, err := dateparse.ParseAny(v); err == nil {
			dates++
		}
	}
	if float64(dates)/float64(len(nonEmpty)) > detectThreshold {
		return TypeDate
	}

	return TypeText
}
