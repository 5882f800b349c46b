package checkout

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/giasinguyen/TrendShirts/internal/domain"
)

// ValidationError collects every invalid field in one pass so the UI can
// highlight all of them together instead of one at a time.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateShipping checks all required shipping fields and reports every
// violation, not just the first. Returns nil when the input is valid.
func ValidateShipping(info domain.ShippingInfo) error {
	fields := make(map[string]string)

	if strings.TrimSpace(info.FullName) == "" {
		fields["fullName"] = "Name is required"
	}
	if strings.TrimSpace(info.Email) == "" {
		fields["email"] = "Email is required"
	} else if !emailPattern.MatchString(strings.TrimSpace(info.Email)) {
		fields["email"] = "Email is invalid"
	}
	if strings.TrimSpace(info.Phone) == "" {
		fields["phone"] = "Phone number is required"
	}
	if strings.TrimSpace(info.Address) == "" {
		fields["address"] = "Address is required"
	}
	if strings.TrimSpace(info.City) == "" {
		fields["city"] = "City is required"
	}
	if strings.TrimSpace(info.State) == "" {
		fields["state"] = "State is required"
	}
	if strings.TrimSpace(info.ZipCode) == "" {
		fields["zipCode"] = "ZIP code is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidatePayment checks the card input against the given current time.
// Expiry uses MM/YY semantics: a card is expired when its year is past, or
// its year is current and its month is past.
func ValidatePayment(info domain.PaymentInfo, now time.Time) error {
	fields := make(map[string]string)

	if strings.TrimSpace(info.CardHolder) == "" {
		fields["cardHolder"] = "Cardholder name is required"
	}

	digits := digitsOnly(info.CardNumber)
	if strings.TrimSpace(info.CardNumber) == "" {
		fields["cardNumber"] = "Card number is required"
	} else if len(digits) < 16 {
		fields["cardNumber"] = "Card number is invalid"
	}

	if strings.TrimSpace(info.ExpiryDate) == "" {
		fields["expiryDate"] = "Expiry date is required"
	} else if msg := checkExpiry(info.ExpiryDate, now); msg != "" {
		fields["expiryDate"] = msg
	}

	if strings.TrimSpace(info.CVV) == "" {
		fields["cvv"] = "CVV is required"
	} else if len(digitsOnly(info.CVV)) < 3 {
		fields["cvv"] = "CVV is invalid"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkExpiry(expiry string, now time.Time) string {
	parts := strings.SplitN(expiry, "/", 2)
	if len(parts) != 2 {
		return "Invalid expiry date"
	}
	month, errM := strconv.Atoi(strings.TrimSpace(parts[0]))
	year, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errM != nil || errY != nil || month < 1 || month > 12 {
		return "Invalid expiry date"
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear || (year == currentYear && month < currentMonth) {
		return "Card has expired"
	}
	return ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
