package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Student code: numeric, 6 to 12 digits
	StudentCodePattern = `^\d{6,12}$`

	// National id: numeric, 8 to 10 digits
	NationalIDPattern = `^\d{8,10}$`

	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Password min length
	PasswordMinLength = 8
)

// InstitutionalDomains is the closed set of email suffixes accepted for
// staff accounts.
var InstitutionalDomains = []string{
	"@upac.edu.co",
	"@unipaz.edu.co",
}

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	StudentCode *regexp.Regexp
	NationalID  *regexp.Regexp
	Email       *regexp.Regexp
}{
	StudentCode: regexp.MustCompile(StudentCodePattern),
	NationalID:  regexp.MustCompile(NationalIDPattern),
	Email:       regexp.MustCompile(EmailPattern),
}

// IsValidStudentCode reports whether a student code matches the 6-12 digit rule.
func IsValidStudentCode(code string) bool {
	return CompiledPatterns.StudentCode.MatchString(code)
}

// IsValidNationalID reports whether a national id matches the 8-10 digit rule.
func IsValidNationalID(id string) bool {
	return CompiledPatterns.NationalID.MatchString(id)
}

// IsInstitutionalEmail reports whether an email is well formed and belongs to
// one of the accepted institutional domains.
func IsInstitutionalEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if !CompiledPatterns.Email.MatchString(email) {
		return false
	}
	for _, domain := range InstitutionalDomains {
		if strings.HasSuffix(email, domain) {
			return true
		}
	}
	return false
}
