// Package phone validates and normalizes Ghanaian mobile numbers.
package phone

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	Region      = "GH"
	CountryCode = "233"
)

// Local (0XXXXXXXXX), country-code (233XXXXXXXXX) or international
// (+233XXXXXXXXX) forms with a nine digit national number.
var pattern = regexp.MustCompile(`^(?:0|233|\+233)(\d{9})$`)

var separators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

func clean(number string) string {
	return separators.Replace(strings.TrimSpace(number))
}

func Valid(number string) bool {
	return pattern.MatchString(clean(number))
}

// National returns the nine digit national significant number.
func National(number string) (string, error) {
	m := pattern.FindStringSubmatch(clean(number))
	if m == nil {
		return "", fmt.Errorf("%q is not a valid %s mobile number", number, Region)
	}
	return m[1], nil
}

// ToE164 formats a valid number as +233XXXXXXXXX for the transport.
func ToE164(number string) (string, error) {
	national, err := National(number)
	if err != nil {
		return "", err
	}

	parsed, err := phonenumbers.Parse("0"+national, Region)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", number, err)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// Mask hides all but the last three digits, for logs.
func Mask(number string) string {
	n := clean(number)
	if len(n) <= 3 {
		return strings.Repeat("*", len(n))
	}
	return strings.Repeat("*", len(n)-3) + n[len(n)-3:]
}
