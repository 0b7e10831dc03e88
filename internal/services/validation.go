package services

import (
	"regexp"
	"strings"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// Saudi mobile numbers: +9665XXXXXXXX, 9665XXXXXXXX or 05XXXXXXXX.
	saudiPhonePattern = regexp.MustCompile(`^(?:\+?9665|05)[0-9]{8}$`)
)

// NormalizeEmail lowercases and trims an address, returning ErrInvalidEmail
// when the result is not a plausible email.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

// NormalizePhone validates a Saudi mobile number and returns it in E.164
// form. An empty input is allowed (phone is optional) and returned as-is.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(strings.ReplaceAll(phone, " ", ""))
	if phone == "" {
		return "", nil
	}
	if !saudiPhonePattern.MatchString(phone) {
		return "", domain.ErrInvalidPhone
	}
	switch {
	case strings.HasPrefix(phone, "+966"):
		return phone, nil
	case strings.HasPrefix(phone, "966"):
		return "+" + phone, nil
	default: // 05XXXXXXXX
		return "+966" + phone[1:], nil
	}
}
