// Package creditcard masks card numbers before they ever reach storage.
package creditcard

import (
	"strings"

	"github.com/zvrva/ticketbooking/internal/domain"
)

const maxDigits = 16

// Mask strips spaces, hyphens and commas from a card number and keeps only
// the first six and last four digits, replacing the middle with six
// asterisks. Anything that is not all digits, longer than sixteen digits or
// too short to retain both ends is rejected.
func Mask(cardNumber string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', ',':
			return -1
		}
		return r
	}, cardNumber)

	if cleaned == "" {
		return "", domain.NewValidation("credit card number must contain only digits")
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", domain.NewValidation("credit card number must contain only digits")
		}
	}
	if len(cleaned) > maxDigits {
		return "", domain.NewValidation("invalid card number")
	}
	if len(cleaned) < 10 {
		return "", domain.NewValidation("invalid card number")
	}
	return cleaned[:6] + "******" + cleaned[len(cleaned)-4:], nil
}
