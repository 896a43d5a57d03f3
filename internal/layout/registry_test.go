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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func blockAt(page, index int, text string) port.TextBlock {
	return port.TextBlock{Page: page, Index: index, Text: text}
}

func mustRule(t *testing.T, businessType domain.BusinessType) layout.PeriodRule {
	t.Helper()
	rule, ok := layout.DefaultRegistry().Lookup(businessType)
	require.True(t, ok)
	return rule
}

func TestCableRule_ReadsBlockSevenFirstPage(t *testing.T) {
	rule := mustRule(t, domain.BusinessCable)
	blocks := []port.TextBlock{
		blockAt(0, 0, "SBB Racun"),
		blockAt(0, 7, "za period\n01.03.2024 do\n31.03.2024"),
	}

	period, err := rule.Extract(blocks)

	require.NoError(t, err)
	assert.True(t, period.Start.Equal(date(2024, time.March, 1)))
	assert.True(t, period.End.Equal(date(2024, time.March, 31)))
}

func TestElectricalRule_ReadsBlockNineFirstPage(t *testing.T) {
	rule := mustRule(t, domain.BusinessElectrical)
	blocks := []port.TextBlock{
		blockAt(0, 9, "obracunski period od 01.02.2024 do 29.02.2024"),
		blockAt(1, 9, "unrelated second page text"),
	}

	period, err := rule.Extract(blocks)

	require.NoError(t, err)
	assert.True(t, period.Start.Equal(date(2024, time.February, 1)))
	assert.True(t, period.End.Equal(date(2024, time.February, 29)))
}

func TestWaterRule_ReadsLastPageTailTokens(t *testing.T) {
	rule := mustRule(t, domain.BusinessWater)
	blocks := []port.TextBlock{
		blockAt(0, 7, "first page noise"),
		blockAt(1, 7, "period 01.01.2024 do 31.01.2024"),
	}

	period, err := rule.Extract(blocks)

	require.NoError(t, err)
	assert.True(t, period.Start.Equal(date(2024, time.January, 1)))
	assert.True(t, period.End.Equal(date(2024, time.January, 31)))
}

func TestRule_MissingBlockIsLayoutMismatch(t *testing.T) {
	rule := mustRule(t, domain.BusinessCable)
	blocks := []port.TextBlock{blockAt(0, 0, "too few blocks")}

	_, err := rule.Extract(blocks)

	var mismatch *domain.LayoutMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "cable", mismatch.Provider)
	assert.Equal(t, 7, mismatch.Block)
}

func TestRegistry_UnknownTypeNotFound(t *testing.T) {
	_, ok := layout.DefaultRegistry().Lookup(domain.BusinessHeating)
	assert.False(t, ok)
}
