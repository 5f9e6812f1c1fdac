package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portfolioCheck() Check {
	p := Payment{ID: "p-1", OrderID: "o-1", Method: PaymentMethodEcheq, Amount: dec("2235875")}
	d := CheckDetails{Bank: "Banco Nación", Number: "0001234", DueDate: testNow.AddDate(0, 1, 0), Holder: "ACME SA", CUIT: "30-71234567-8"}
	return NewCheck("c-1", p, d, testNow)
}

func TestNewCheck(t *testing.T) {
	c := portfolioCheck()
	assert.Equal(t, CheckStatusInPortfolio, c.Status)
	assert.True(t, c.Electronic)
	assert.Equal(t, "p-1", c.PaymentID)
	assert.True(t, dec("2235875").Equal(c.Amount))
}

func TestCheckDetails_Validate(t *testing.T) {
	full := CheckDetails{Bank: "b", Number: "n", DueDate: testNow, Holder: "h", CUIT: "c"}
	require.NoError(t, full.Validate())

	tests := map[string]func(d *CheckDetails){
		"bank":   func(d *CheckDetails) { d.Bank = "" },
		"number": func(d *CheckDetails) { d.Number = "" },
		"date":   func(d *CheckDetails) { d.DueDate = time.Time{} },
		"holder": func(d *CheckDetails) { d.Holder = "" },
		"cuit":   func(d *CheckDetails) { d.CUIT = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			d := full
			mutate(&d)
			err := d.Validate()
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), "check_")
		})
	}
}

func TestCheck_MoveTo(t *testing.T) {
	for _, target := range []CheckStatus{CheckStatusDeposited, CheckStatusCashed, CheckStatusRejected} {
		c := portfolioCheck()
		require.NoError(t, c.MoveTo(target, "", "", testNow))
		assert.Equal(t, target, c.Status)
		assert.NotNil(t, c.ResolvedAt)

		err := c.MoveTo(CheckStatusCashed, "", "", testNow)
		assert.True(t, errors.Is(err, ErrInvalidState), "from %s", target)
	}

	c := portfolioCheck()
	err := c.MoveTo(CheckStatusEndorsed, "", "", testNow)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, CheckStatusInPortfolio, c.Status)

	require.NoError(t, c.MoveTo(CheckStatusEndorsed, "Proveedor Papel SRL", "pago bobinas", testNow))
	assert.Equal(t, "Proveedor Papel SRL", c.EndorsedTo)
}
