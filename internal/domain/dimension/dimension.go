// Package dimension models carpet measurements as whole feet plus whole
// inches. The business historically wired these as packed decimals where
// "7.11" meant 7 ft 11 in — a format that reads as 7.11 ft to naive decimal
// parsing. The structured form converts to decimal feet only at area time.
package dimension

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// Dimension is a length in feet and inches. Inches stay in [0, 11].
type Dimension struct {
	Feet   int `json:"feet"`
	Inches int `json:"inches"`
}

// Validate rejects negative feet and inches outside [0, 11].
func (d Dimension) Validate() error {
	if d.Feet < 0 {
		return fmt.Errorf("feet must not be negative, got %d", d.Feet)
	}
	if d.Inches < 0 || d.Inches > 11 {
		return fmt.Errorf("inches must be in [0, 11], got %d", d.Inches)
	}
	return nil
}

// IsZero reports a fully absent measurement.
func (d Dimension) IsZero() bool { return d.Feet == 0 && d.Inches == 0 }

// DecimalFeet converts to decimal feet: feet + inches/12.
// 7 ft 11 in -> 7.9167 decimal feet, never 7.11.
func (d Dimension) DecimalFeet() decimal.Decimal {
	return decimal.NewFromInt(int64(d.Feet)).
		Add(decimal.NewFromInt(int64(d.Inches)).Div(twelve))
}

// String renders the conventional notation, e.g. 7'11".
func (d Dimension) String() string {
	return fmt.Sprintf("%d'%d\"", d.Feet, d.Inches)
}

// Area is length x width in square feet.
func Area(length, width Dimension) decimal.Decimal {
	return length.DecimalFeet().Mul(width.DecimalFeet())
}

// ParsePacked accepts the legacy packed encoding still present in historical
// exports: "7.11" is 7 ft 11 in, "7.5" is 7 ft 5 in, "7" is 7 ft flat.
// The fractional part is inches, not a decimal fraction.
func ParsePacked(s string) (Dimension, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dimension{}, nil
	}
	feetPart, inchPart, found := strings.Cut(s, ".")
	var d Dimension
	var err error
	if feetPart != "" {
		d.Feet, err = strconv.Atoi(feetPart)
		if err != nil {
			return Dimension{}, fmt.Errorf("parse packed dimension %q: %w", s, err)
		}
	}
	if found && inchPart != "" {
		d.Inches, err = strconv.Atoi(inchPart)
		if err != nil {
			return Dimension{}, fmt.Errorf("parse packed dimension %q: %w", s, err)
		}
	}
	if err := d.Validate(); err != nil {
		return Dimension{}, fmt.Errorf("parse packed dimension %q: %w", s, err)
	}
	return d, nil
}

// PackedString renders the legacy encoding for export compatibility.
func (d Dimension) PackedString() string {
	return fmt.Sprintf("%d.%02d", d.Feet, d.Inches)
}
