package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/scan"
)

func TestTokenize_SingleRecord(t *testing.T) {
	records := scan.Tokenize("R:160000000000001234|I:RSD2500,00|SF:189")

	require.Len(t, records, 1)
	assert.Equal(t, "160000000000001234", records[0][scan.FieldAccount])
	assert.Equal(t, "RSD2500,00", records[0][scan.FieldAmount])
	assert.Equal(t, "189", records[0][scan.FieldPayCode])
}

func TestTokenize_RepeatedKeyStartsNewRecord(t *testing.T) {
	records := scan.Tokenize("R:111|I:RSD1,00|R:222|I:RSD2,00")

	require.Len(t, records, 2)
	assert.Equal(t, "111", records[0][scan.FieldAccount])
	assert.Equal(t, "RSD1,00", records[0][scan.FieldAmount])
	assert.Equal(t, "222", records[1][scan.FieldAccount])
	assert.Equal(t, "RSD2,00", records[1][scan.FieldAmount])
}

func TestTokenize_ValueContainingSeparator(t *testing.T) {
	records := scan.Tokenize("N:JKP Vodovod:Beograd|R:111")

	require.Len(t, records, 1)
	assert.Equal(t, "JKP Vodovod:Beograd", records[0]["N"])
}

func TestTokenize_IgnoresSegmentsWithoutSeparator(t *testing.T) {
	records := scan.Tokenize("PR|R:111|garbage")

	require.Len(t, records, 1)
	assert.Equal(t, "111", records[0][scan.FieldAccount])
	_, ok := records[0]["PR"]
	assert.False(t, ok)
}

func TestTokenize_NoMatch(t *testing.T) {
	assert.Nil(t, scan.Tokenize("no separators here"))
	assert.Nil(t, scan.Tokenize("a|b|c"))
	assert.Nil(t, scan.Tokenize(""))
}

func TestSplitReference(t *testing.T) {
	cases := []struct {
		name       string
		reference  string
		payModel   string
		callNumber string
	}{
		{"model 97", "97765432100", "97", "765432100"},
		{"bare call number", "123456", "", "123456"},
		{"empty", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model, call := scan.SplitReference(tc.reference)
			assert.Equal(t, tc.payModel, model)
			assert.Equal(t, tc.callNumber, call)
		})
	}
}
