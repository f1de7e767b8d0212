package finance_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	finance "github.com/felipet/finance-api"
	"github.com/felipet/finance-api/financetest"
)

func TestDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		company finance.Company
		want    string
	}{
		{
			name:    "ticker and short name",
			company: financetest.NewMockCompany("Banco Bilbao Vizcaya Argentaria", "", "ES0113211835", "BBVA", ""),
			want:    "BBVA: Banco Bilbao Vizcaya Argentaria",
		},
		{
			name:    "full name is not rendered",
			company: financetest.NewMockCompany("Inditex", "Industria de Diseño Textil, S.A.", "ES0148396007", "ITX", "A15075062"),
			want:    "ITX: Inditex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, finance.Display(tt.company))
		})
	}
}

func TestDebug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		company finance.Company
		want    string
	}{
		{
			name:    "optional fields absent",
			company: financetest.NewMockCompany("Inditex", "", "ES0148396007", "ITX", ""),
			want:    `(nil, "Inditex", "ITX", "ES0148396007", nil)`,
		},
		{
			name:    "all fields present",
			company: financetest.NewMockCompany("Inditex", "Industria de Diseño Textil, S.A.", "ES0148396007", "ITX", "A15075062"),
			want:    `("Industria de Diseño Textil, S.A.", "Inditex", "ITX", "ES0148396007", "A15075062")`,
		},
		{
			name:    "only extra id present",
			company: financetest.NewMockCompany("Repsol", "", "ES0173516115", "REP", "A78374725"),
			want:    `(nil, "Repsol", "REP", "ES0173516115", "A78374725")`,
		},
		{
			name:    "quotes are escaped",
			company: financetest.NewMockCompany(`The "Bank"`, "", "XX0000000000", "BNK", ""),
			want:    `(nil, "The \"Bank\"", "BNK", "XX0000000000", nil)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, finance.Debug(tt.company))
		})
	}
}

func TestView_Format(t *testing.T) {
	t.Parallel()

	v := finance.View{Company: financetest.NewMockCompany("Inditex", "", "ES0148396007", "ITX", "")}

	assert.Equal(t, "ITX: Inditex", fmt.Sprintf("%v", v))
	assert.Equal(t, "ITX: Inditex", fmt.Sprintf("%s", v))
	assert.Equal(t, `(nil, "Inditex", "ITX", "ES0148396007", nil)`, fmt.Sprintf("%#v", v))
	assert.Equal(t, "Inditex", v.Name(), "accessors are promoted")
}
