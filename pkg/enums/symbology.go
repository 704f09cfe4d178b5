package enums

import "fmt"

// Symbology is the barcode symbology printed on product labels.
type Symbology string

const (
	SymbologyCode128 Symbology = "code128"
	SymbologyCode39  Symbology = "code39"
	SymbologyUPCA    Symbology = "upca"
	SymbologyUPCE    Symbology = "upce"
	SymbologyEAN8    Symbology = "ean8"
	SymbologyEAN13   Symbology = "ean13"
)

var validSymbologies = []Symbology{
	SymbologyCode128,
	SymbologyCode39,
	SymbologyUPCA,
	SymbologyUPCE,
	SymbologyEAN8,
	SymbologyEAN13,
}

// String implements fmt.Stringer.
func (s Symbology) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Symbology.
func (s Symbology) IsValid() bool {
	for _, candidate := range validSymbologies {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSymbology converts raw input into a Symbology.
func ParseSymbology(value string) (Symbology, error) {
	for _, candidate := range validSymbologies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid symbology %q", value)
}
