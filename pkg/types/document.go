package types

import (
	"fmt"
	"strings"

	"github.com/orderhub/orderhub-backend/pkg/enums"
)

// Document is a validated Brazilian tax identifier: CPF for natural persons,
// CNPJ for businesses. The stored value keeps digits only.
type Document struct {
	value string
}

var (
	ErrInvalidCPF  = fmt.Errorf("invalid CPF")
	ErrInvalidCNPJ = fmt.Errorf("invalid CNPJ")
)

// NewDocument validates raw input against the rules for the given person type.
func NewDocument(raw string, personType enums.PersonType) (Document, error) {
	digits := onlyDigits(raw)
	switch personType {
	case enums.PersonTypeBusiness:
		if !validCNPJ(digits) {
			return Document{}, ErrInvalidCNPJ
		}
	default:
		if !validCPF(digits) {
			return Document{}, ErrInvalidCPF
		}
	}
	return Document{value: digits}, nil
}

// String returns the normalized digit-only form.
func (d Document) String() string {
	return d.value
}

func onlyDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validCPF(digits string) bool {
	if len(digits) != 11 || allSame(digits) {
		return false
	}
	first := cpfCheckDigit(digits[:9])
	second := cpfCheckDigit(digits[:10])
	return digits[9:] == fmt.Sprintf("%d%d", first, second)
}

func cpfCheckDigit(base string) int {
	weight := len(base) + 1
	sum := 0
	for i, r := range base {
		sum += int(r-'0') * (weight - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func validCNPJ(digits string) bool {
	if len(digits) != 14 || allSame(digits) {
		return false
	}
	first := cnpjCheckDigit(digits[:12])
	second := cnpjCheckDigit(digits[:13])
	return digits[12:] == fmt.Sprintf("%d%d", first, second)
}

var cnpjWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

func cnpjCheckDigit(base string) int {
	sum := 0
	// Weights align from the right, matching the modulo-11 scheme.
	offset := len(cnpjWeights) - len(base)
	for i, r := range base {
		sum += int(r-'0') * cnpjWeights[offset+i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
