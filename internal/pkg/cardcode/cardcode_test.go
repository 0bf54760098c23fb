package cardcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "UPAC-12300298", Encode("12300298"))
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		payload  string
		expected string
	}{
		{"UPAC-12300298", "12300298"},
		{"12300298", "12300298"},
		{"  UPAC-12300298  ", "12300298"},
		{"UPAC-", ""},
		{"", ""},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.expected, Decode(tt.payload))
	}
}

func TestRoundTrip(t *testing.T) {
	assert.Equal(t, "654321", Decode(Encode("654321")))
}
