package catalog

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// groupedDecimal allows digit groups such as 1_000 but no base prefixes.
var groupedDecimal = regexp.MustCompile(`^[+-]?[0-9]+(_[0-9]+)*$`)

// ParseInt reads a decimal integer. cast parses with base 0, so leading zeros
// are dropped before the call to keep "010" from reading as octal.
func ParseInt(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	if !groupedDecimal.MatchString(raw) {
		return 0, errors.Errorf("invalid integer %q", s)
	}
	sign, digits := "", strings.ReplaceAll(raw, "_", "")
	if digits[0] == '-' || digits[0] == '+' {
		sign, digits = digits[:1], digits[1:]
	}
	if digits = strings.TrimLeft(digits, "0"); digits == "" {
		digits = "0"
	}
	n, err := cast.ToInt64E(sign + digits)
	if err != nil {
		return 0, errors.Errorf("invalid integer %q", s)
	}
	return n, nil
}

// ParseAffirmative reports whether s is one of true, yes or 1.
func ParseAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
