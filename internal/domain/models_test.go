package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billscan/internal/domain"
)

func TestBusinessValidate(t *testing.T) {
	valid := domain.Business{
		Name:        "EPS Snabdevanje",
		BankAccount: "160000000000001234",
		Type:        domain.BusinessElectrical,
		URL:         "https://eps.rs",
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(b *domain.Business)
	}{
		{"short account", func(b *domain.Business) { b.BankAccount = "12345" }},
		{"non-numeric account", func(b *domain.Business) { b.BankAccount = "16000000000000123X" }},
		{"unknown type", func(b *domain.Business) { b.Type = "bakery" }},
		{"bad url scheme", func(b *domain.Business) { b.URL = "ftp://eps.rs" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := valid
			tc.mutate(&b)
			assert.Error(t, b.Validate())
		})
	}
}

func TestAddressValidate(t *testing.T) {
	addr := domain.Address{Street: "Bulevar", Number: "12", City: "Beograd", PostalCode: 11000}
	assert.NoError(t, addr.Validate())

	addr.PostalCode = 999
	assert.Error(t, addr.Validate())
}

func TestBillingPeriodString(t *testing.T) {
	p := domain.BillingPeriod{
		Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "01.03.2024 to 31.03.2024", p.String())
}
