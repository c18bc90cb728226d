package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Pizza", "16.00"},
		{"", "11.00"},
		{"Spaghetti Bolognese", "18.00"},
		{"Beef and Mustard Pie", "19.00"},
		{"Crème brûlée", "11.00"},
		// surrogate pairs count twice
		{"🍕", "13.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.name).StringFixed(2))
		})
	}
}

func TestPriceIsStable(t *testing.T) {
	assert.True(t, Price("Teriyaki Chicken Casserole").Equal(Price("Teriyaki Chicken Casserole")))
}
