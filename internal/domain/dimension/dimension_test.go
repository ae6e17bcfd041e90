package dimension_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirzacarpets/ledger-api/internal/domain/dimension"
)

func TestDecimalFeet_InchesAreTwelfths(t *testing.T) {
	d := dimension.Dimension{Feet: 7, Inches: 11}

	got := d.DecimalFeet()

	// 7 + 11/12 = 7.91666..., NOT the naive 7.11 the packed format suggests.
	expected := decimal.RequireFromString("7.9167")
	assert.True(t, got.Round(4).Equal(expected), "got %s", got)
	assert.False(t, got.Equal(decimal.RequireFromString("7.11")))
}

func TestDecimalFeet_WholeFeet(t *testing.T) {
	d := dimension.Dimension{Feet: 8}
	assert.True(t, d.DecimalFeet().Equal(decimal.NewFromInt(8)))
}

func TestArea(t *testing.T) {
	// 6'0" x 4'6" = 6 * 4.5 = 27 sq ft.
	l := dimension.Dimension{Feet: 6}
	w := dimension.Dimension{Feet: 4, Inches: 6}

	assert.True(t, dimension.Area(l, w).Equal(decimal.NewFromInt(27)),
		"got %s", dimension.Area(l, w))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		dim     dimension.Dimension
		wantErr bool
	}{
		{"ok", dimension.Dimension{Feet: 7, Inches: 11}, false},
		{"zero", dimension.Dimension{}, false},
		{"inches overflow", dimension.Dimension{Feet: 7, Inches: 12}, true},
		{"negative inches", dimension.Dimension{Feet: 7, Inches: -1}, true},
		{"negative feet", dimension.Dimension{Feet: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dim.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParsePacked_RoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want dimension.Dimension
	}{
		{"7.11", dimension.Dimension{Feet: 7, Inches: 11}},
		{"7.5", dimension.Dimension{Feet: 7, Inches: 5}},
		{"7.05", dimension.Dimension{Feet: 7, Inches: 5}},
		{"7", dimension.Dimension{Feet: 7}},
		{"", dimension.Dimension{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dimension.ParsePacked(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePacked_Invalid(t *testing.T) {
	for _, in := range []string{"7.12", "abc", "7.x", "-1.3"} {
		t.Run(in, func(t *testing.T) {
			_, err := dimension.ParsePacked(in)
			assert.Error(t, err)
		})
	}
}

func TestPackedString(t *testing.T) {
	d := dimension.Dimension{Feet: 7, Inches: 5}
	got, err := dimension.ParsePacked(d.PackedString())
	require.NoError(t, err)
	assert.Equal(t, d, got)
}
