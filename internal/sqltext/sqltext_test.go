package sqltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "mjovanc", want: "'mjovanc'"},
		{name: "empty", in: "", want: "''"},
		{name: "single quote", in: "O'Brien", want: "'O''Brien'"},
		{name: "injection attempt", in: "'; DROP TABLE users; --", want: "'''; DROP TABLE users; --'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Quote(tc.in))
		})
	}
}

func TestQuoteAll(t *testing.T) {
	assert.Equal(t, []string{"'a'", "'b''c'"}, QuoteAll([]string{"a", "b'c"}))
	assert.Empty(t, QuoteAll(nil))
}

func TestSanitizeIdentifier(t *testing.T) {
	assert.Equal(t, "users", SanitizeIdentifier(`"users"`))
	assert.Equal(t, "users", SanitizeIdentifier(`us\ers`))
	assert.Equal(t, "main.users", SanitizeIdentifier(`"main".\"users\"`))

	// "e" + combining acute accent composes to U+00E9.
	assert.Equal(t, "caf\u00e9", SanitizeIdentifier("cafe\u0301"))
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "LIMIT 1 OFFSET 0", JoinNonEmpty(" ", "LIMIT 1", "OFFSET 0"))
	assert.Equal(t, "OFFSET 5", JoinNonEmpty(" ", "", "OFFSET 5"))
	assert.Equal(t, "", JoinNonEmpty(" ", "", ""))
}
