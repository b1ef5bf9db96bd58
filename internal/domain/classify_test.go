package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testLine is the canonical well-formed input line. The 375-minute latitude
// is deliberate: minutes are not range-checked, only converted.
const testLine = "2015 08 28  63 375  96 15  -2.46"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind LineKind
	}{
		{"empty line", "", LineBlank},
		{"whitespace only", "   \t  ", LineBlank},
		{"comment", "# site notes for the 2015 trip", LineComment},
		{"comment with leading whitespace", "   # indented comment", LineComment},
		{"too few fields", "2015 08 28 63 375 96 15", LineMalformed},
		{"single token", "garbage", LineMalformed},
		{"data line", testLine, LineData},
		{"extra fields tolerated", testLine + " trailing junk", LineData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ClassifyLine(tt.raw, MinFields)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.raw, c.Raw)
		})
	}
}

func TestClassifyLine_DataFields(t *testing.T) {
	c := ClassifyLine(testLine, MinFields)
	assert.Equal(t, LineData, c.Kind)
	assert.Equal(t, []string{"2015", "08", "28", "63", "375", "96", "15", "-2.46"}, c.Fields)
}

func TestClassifyLine_NonDataKindsCarryNoFields(t *testing.T) {
	assert.Nil(t, ClassifyLine("# comment", MinFields).Fields)
	assert.Nil(t, ClassifyLine("", MinFields).Fields)
	assert.Nil(t, ClassifyLine("1 2 3", MinFields).Fields)
}
