package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 12)
	assert.Equal(t, "Bill Name", row[0])
	assert.Equal(t, "Created At", row[11])
}

func TestWriteRows(t *testing.T) {
	createdAt := time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)
	bill := domain.Bill{
		ID:          uuid.New(),
		Name:        "JKP Vodovod from 01.03.2024 to 31.03.2024",
		Paid:        true,
		DatePaid:    createdAt,
		Amount:      decimal.RequireFromString("1318.77"),
		PayCode:     "189",
		PayModel:    "97",
		CallNumber:  "765432100",
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		CreatedAt:   createdAt,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRows([]Row{
		{Bill: bill, BusinessName: "JKP Vodovod", BusinessType: domain.BusinessWater},
	}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "JKP Vodovod from 01.03.2024 to 31.03.2024", row[0])
	assert.Equal(t, "JKP Vodovod", row[1])
	assert.Equal(t, "water", row[2])
	assert.Equal(t, "1318.77", row[3])
	assert.Equal(t, "189", row[4])
	assert.Equal(t, "97", row[5])
	assert.Equal(t, "765432100", row[6])
	assert.Equal(t, "2024-03-01", row[7])
	assert.Equal(t, "2024-03-31", row[8])
	assert.Equal(t, "Yes", row[9])
	assert.Equal(t, "2024-04-02", row[10])
	assert.Equal(t, "2024-04-02T08:00:00Z", row[11])
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"bills", "bills"},
		{"racun za mart / 2024", "racun_za_mart_2024"},
		{"__already__clean__", "already_clean"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in))
	}
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("bills", "csv")
	assert.Regexp(t, `^bills_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
