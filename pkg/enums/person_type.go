package enums

import "fmt"

// PersonType distinguishes natural persons (CPF) from businesses (CNPJ).
type PersonType string

const (
	PersonTypePerson   PersonType = "person"
	PersonTypeBusiness PersonType = "business"
)

var validPersonTypes = []PersonType{
	PersonTypePerson,
	PersonTypeBusiness,
}

// String implements fmt.Stringer.
func (p PersonType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PersonType.
func (p PersonType) IsValid() bool {
	for _, candidate := range validPersonTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePersonType converts raw input into a PersonType.
func ParsePersonType(value string) (PersonType, error) {
	for _, candidate := range validPersonTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid person type %q", value)
}
