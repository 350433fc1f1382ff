package informdirect

import (
	"fmt"
	"regexp"
)

// companyNumberPattern matches Companies House numbers: eight digits, or a
// two letter jurisdiction prefix followed by six digits.
var companyNumberPattern = regexp.MustCompile(`^(?:[A-Z]{2}[0-9]{6}|[0-9]{8})$`)

// ValidateCompanyNumber rejects numbers that are not eight digits or a
// two uppercase letter prefix plus six digits. Input is not trimmed or
// case folded.
func ValidateCompanyNumber(companyNumber string) error {
	if companyNumberPattern.MatchString(companyNumber) {
		return nil
	}

	return NewValidationError(fmt.Sprintf(
		"Invalid company number %q: expected 8 digits or 2-letter prefix + 6 digits (e.g. 00014259, SC123456)",
		companyNumber,
	))
}
