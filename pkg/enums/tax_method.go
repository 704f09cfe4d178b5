package enums

import "fmt"

// TaxMethod determines whether tax is folded into the listed price or added on top.
type TaxMethod string

const (
	TaxMethodInclusive TaxMethod = "Inclusive"
	TaxMethodExclusive TaxMethod = "Exclusive"
)

var validTaxMethods = []TaxMethod{
	TaxMethodInclusive,
	TaxMethodExclusive,
}

// String implements fmt.Stringer.
func (m TaxMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known TaxMethod.
func (m TaxMethod) IsValid() bool {
	for _, candidate := range validTaxMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseTaxMethod converts raw input into a TaxMethod.
func ParseTaxMethod(value string) (TaxMethod, error) {
	for _, candidate := range validTaxMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tax method %q", value)
}
