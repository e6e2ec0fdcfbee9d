package receiptpdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	g := NewGenerator()

	out, err := g.Generate(&ReceiptData{
		Token:          "4f4cbdde-6cbb-4a0b-9f2a-27b40d9a1b11",
		OwnerName:      "Renilson Medeiros",
		TenantName:     "João da Silva",
		TenantCPF:      "123.456.789-01",
		PropertyLabel:  "Casa Azul - João Pessoa/PB",
		ReferenceMonth: "2026-05",
		Amount:         1200.50,
		IssuedAt:       time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
