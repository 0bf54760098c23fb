// Package cardcode encodes and decodes the scannable payload printed on
// student cards.
package cardcode

import "strings"

// Prefix marks a payload as a card scan.
const Prefix = "UPAC-"

// Encode builds the scannable payload for a student code.
func Encode(code string) string {
	return Prefix + code
}

// Decode extracts the student code from a scanned payload. A missing prefix
// is tolerated: the whole payload is then treated as the code, so hand-typed
// codes validate the same way scans do.
func Decode(payload string) string {
	payload = strings.TrimSpace(payload)
	return strings.TrimPrefix(payload, Prefix)
}
