package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines unit-safe lengths and the printer density used to turn them into dots.

// PrintDensity is the printer resolution in dots per millimeter.
type PrintDensity int

const (
	Density6  PrintDensity = 6  // 152 dpi
	Density8  PrintDensity = 8  // 203 dpi
	Density12 PrintDensity = 12 // 300 dpi
	Density24 PrintDensity = 24 // 600 dpi

	DefaultDensity = Density8
)

// DotsPerMM returns the density as a float factor.
func (d PrintDensity) DotsPerMM() float64 { return float64(d) }

// DPI returns the nominal dots per inch printed on the device label.
func (d PrintDensity) DPI() int {
	switch d {
	case Density6:
		return 152
	case Density8:
		return 203
	case Density12:
		return 300
	case Density24:
		return 600
	default:
		return int(math.Round(float64(d) * 25.4))
	}
}

func (d PrintDensity) String() string { return fmt.Sprintf("%ddpmm", int(d)) }

// Valid reports whether d is one of the supported printer densities.
func (d PrintDensity) Valid() bool {
	switch d {
	case Density6, Density8, Density12, Density24:
		return true
	}
	return false
}

// ParseDensity accepts "8", "8dpmm" or "203dpi".
func ParseDensity(value string) (PrintDensity, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	var d PrintDensity
	switch {
	case strings.HasSuffix(v, "dpi"):
		n, err := strconv.Atoi(strings.TrimSuffix(v, "dpi"))
		if err != nil {
			return 0, fmt.Errorf("invalid density %q: %w", value, err)
		}
		switch n {
		case 152:
			d = Density6
		case 203:
			d = Density8
		case 300:
			d = Density12
		case 600:
			d = Density24
		default:
			return 0, fmt.Errorf("unsupported density %q", value)
		}
	default:
		n, err := strconv.Atoi(strings.TrimSuffix(v, "dpmm"))
		if err != nil {
			return 0, fmt.Errorf("invalid density %q: %w", value, err)
		}
		d = PrintDensity(n)
	}
	if !d.Valid() {
		return 0, fmt.Errorf("unsupported density %q", value)
	}
	return d, nil
}

// Unit is the unit a length value was written in.
type Unit int

const (
	UnitDots Unit = iota // printer dots, the default for bare numbers
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	default:
		return "dots"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToMM converts the length to millimeters; dots need the density.
func (l Length) ToMM(d PrintDensity) float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	default:
		if d <= 0 {
			return l.Value
		}
		return l.Value / d.DotsPerMM()
	}
}

// Dots converts the length to whole printer dots (rounded).
func (l Length) Dots(d PrintDensity) int {
	if l.Unit == UnitDots {
		return int(math.Round(l.Value))
	}
	return int(math.Round(l.ToMM(d) * d.DotsPerMM()))
}

// ParseLength parses a template length such as "40", "40dots", "12.5mm" or "1in".
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("empty length")
	}
	unit := UnitDots
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"dots", UnitDots}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}
