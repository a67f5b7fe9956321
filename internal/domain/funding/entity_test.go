package funding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligible(t *testing.T) {
	schemes := []*Scheme{
		{Name: "PMEGP", Industries: []string{"all"}, MaxAmount: 2500000},
		{Name: "Stand-Up India", Industries: []string{"all"}, MaxAmount: 10000000, WomenFocused: true},
		{Name: "Mudra Shishu", Industries: []string{"Retail"}, MaxAmount: 50000},
		{Name: "Annapurna", Industries: []string{"Food Processing"}, MaxAmount: 50000, WomenFocused: true},
		{Name: "SIDBI Fund", Industries: []string{"retail"}, MaxAmount: 0},
	}

	got := Eligible(schemes, "Retail", 400000)
	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Stand-Up India", "PMEGP", "SIDBI Fund"}, names)
}

func TestForecastEnsureArrays(t *testing.T) {
	var f Forecast
	f.EnsureArrays()
	assert.NotNil(t, f.Years)
	assert.NotNil(t, f.Assumptions)
	assert.Equal(t, "INR", f.Currency)
}
