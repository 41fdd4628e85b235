package sorter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFieldType(t *testing.T) {
	tests := []struct {
		name    string
		samples []string
		want    FieldType
	}{
		{"no samples", nil, TypeText},
		{"only empty and whitespace", []string{"", "   ", "\t"}, TypeText},
		{"all numbers", []string{"1", "2.5", "-3", "4e2", "1000"}, TypeNumber},
		{"comma decimals", []string{"1,5", "2,25", "100,0"}, TypeNumber},
		{"numbers with surrounding whitespace", []string{" 1 ", "2 ", " 3"}, TypeNumber},
		{"mostly numbers", []string{"1", "2", "3", "4", "5", "x"}, TypeNumber},
		{"plain text", []string{"alpha", "beta", "gamma"}, TypeText},
		{"dates", []string{"2023-01-15", "2023-02-20", "March 5, 2020", "2021-07-04T10:30:00Z", "15 Jan 2024", "junk"}, TypeDate},
		{"digit-only dates detect as numbers first", []string{"20230115", "20230116", "20230117"}, TypeNumber},
		{"empty samples are discarded before counting", []string{"", "1", "2", "3", "  "}, TypeNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFieldType(tt.samples))
		})
	}
}

// Exactly 80% parsable must not qualify: the threshold is strict.
func TestDetectFieldTypeBoundary(t *testing.T) {
	numbers80 := []string{"1.5", "2.5", "3.5", "4.5", "x"}
	assert.Equal(t, TypeText, DetectFieldType(numbers80))

	dates80 := []string{"2023-01-15", "2023-02-20", "2023-03-25", "2023-04-30", "junk"}
	assert.Equal(t, TypeText, DetectFieldType(dates80))

	// One sample over the boundary flips the result.
	numbers83 := []string{"1.5", "2.5", "3.5", "4.5", "5.5", "x"}
	assert.Equal(t, TypeNumber, DetectFieldType(numbers83))
}
