package logger

import "strings"

// MaskCardNumber keeps the last four digits of a card number.
func MaskCardNumber(number string) string {
	number = strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if number == "" {
		return ""
	}
	return maskLast4(number)
}

// MaskSecret masks credentials, preserving only the last 4 characters.
func MaskSecret(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return maskLast4(value)
}

// MaskAuthorization masks bearer tokens, preserving the scheme.
func MaskAuthorization(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parts := strings.Fields(value)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return "Bearer " + maskLast4(parts[1])
	}
	return maskLast4(value)
}

func maskLast4(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
