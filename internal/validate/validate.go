package validate

import (
	"regexp"
	"strings"

	"wardrobe/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

const (
	MaxName  = 250
	MaxImage = 500
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ID validates a resource identifier: uuids and the seeded slug ids both pass.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name of 1..MaxName bytes.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxName {
		return "", false
	}
	return s, true
}

// Image accepts a stored image path or URL.
func Image(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > MaxImage || strings.ContainsAny(s, " \t\r\n") {
		return "", false
	}
	return s, true
}

// Size normalises to upper case and checks the size enum.
func Size(s string) (domain.Size, bool) {
	sz := domain.Size(strings.ToUpper(strings.TrimSpace(s)))
	return sz, sz.Valid()
}

func CategoryType(s string) (domain.CategoryType, bool) {
	t := domain.CategoryType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Password requires 8..72 bytes (bcrypt's limit) mixing lower, upper, digit and symbol.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
