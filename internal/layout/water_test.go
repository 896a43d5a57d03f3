package layout_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/layout"
	"billscan/internal/port"
)

const softHyphen = "­"

// waterBlocks builds the last-page blocks of the water-utility template
// with sane defaults; tests override individual blocks.
func waterBlocks() []port.TextBlock {
	return []port.TextBlock{
		blockAt(0, 7, "cover page"),
		blockAt(1, 7, "za period 01.04.2024 do 30.04.2024"),
		blockAt(1, 19, "ukupno 1.318,77 RSD dug"),
		blockAt(1, 24, "205"+softHyphen+"98765"+softHyphen+"21"),
		blockAt(1, 25, "poziv na broj 12"+softHyphen+"345678"),
	}
}

func TestExtractWaterBill(t *testing.T) {
	water, err := layout.ExtractWaterBill(waterBlocks())

	require.NoError(t, err)
	assert.Equal(t, "205000000009876521", water.Account)
	assert.Equal(t, "1318.77", water.Amount.StringFixed(2))
	assert.Equal(t, "12345678", water.CallNumber)
	assert.True(t, water.Period.Start.Equal(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, water.Period.End.Equal(time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)))
}

func TestWaterAccount_MiddlePartZeroPadded(t *testing.T) {
	blocks := waterBlocks()
	blocks[3] = blockAt(1, 24, "160 1234 99")

	water, err := layout.ExtractWaterBill(blocks)

	require.NoError(t, err)
	assert.Equal(t, "160000000000123499", water.Account)
}

func TestWaterAccount_WrongPartCount(t *testing.T) {
	blocks := waterBlocks()
	blocks[3] = blockAt(1, 24, "160 1234")

	_, err := layout.ExtractWaterBill(blocks)

	var mismatch *domain.LayoutMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "water", mismatch.Provider)
	assert.Equal(t, 24, mismatch.Block)
}

func TestWaterAccount_NonNumericReconstruction(t *testing.T) {
	blocks := waterBlocks()
	blocks[3] = blockAt(1, 24, "160 12X4 99")

	_, err := layout.ExtractWaterBill(blocks)

	var mismatch *domain.LayoutMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestWaterBill_MissingAmountBlock(t *testing.T) {
	blocks := []port.TextBlock{
		blockAt(0, 7, "za period 01.04.2024 do 30.04.2024"),
		blockAt(0, 24, "160 1234 99"),
		blockAt(0, 25, "12345678"),
	}

	_, err := layout.ExtractWaterBill(blocks)

	var mismatch *domain.LayoutMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 19, mismatch.Block)
}
