package validate

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
		err   string
	}{
		{name: "com domain", email: "a@b.com", valid: true},
		{name: "uk domain", email: "finance@acme.co.uk", valid: true},
		{name: "pk domain", email: "ops@lahore.pk", valid: true},
		{name: "de domain", email: "a@b.de", err: MsgEmailDomain},
		{name: "empty", email: "", err: MsgEmailRequired},
		{name: "whitespace", email: "   ", err: MsgEmailEmpty},
		{name: "missing at", email: "ab.com", err: MsgEmailDomain},
		{name: "inner space", email: "a b@c.com", err: MsgEmailDomain},
		{name: "uppercase tld", email: "a@b.COM", err: MsgEmailDomain},
		{name: "no-break space in local part", email: "a\u00a0b@c.com", err: MsgEmailDomain},
		{name: "ideographic space in domain", email: "a@b\u3000c.com", err: MsgEmailDomain},
		{name: "vertical tab", email: "a\vb@c.com", err: MsgEmailDomain},
		{name: "byte order mark", email: "\ufeffa@b.com", err: MsgEmailDomain},
		{name: "non-ascii letters", email: "josé@café.com", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Email(tt.email)
			require.Equal(t, tt.valid, got.Valid)
			require.Equal(t, tt.err, got.Error)
		})
	}
}

func TestProperty_EmailMatchesAllowList(t *testing.T) {
	separator := func(r rune) bool { return unicode.IsSpace(r) || r == '\ufeff' || r == '@' }
	rapid.Check(t, func(rt *rapid.T) {
		email := rapid.StringMatching(`[a-zé@. \x{00A0}\x{2009}]{0,6}@?[a-z.\x{3000}]{0,6}\.(com|uk|pk|de|org)?`).Draw(rt, "email")
		got := Email(email)
		if strings.TrimSpace(email) == "" {
			require.False(t, got.Valid)
			return
		}

		want := false
		if local, rest, ok := strings.Cut(email, "@"); ok && local != "" && !strings.ContainsFunc(local, separator) {
			dot := strings.LastIndex(rest, ".")
			if dot > 0 && !strings.ContainsFunc(rest[:dot], separator) {
				switch rest[dot+1:] {
				case "com", "uk", "pk":
					want = true
				}
			}
		}
		require.Equal(t, want, got.Valid, "email %q", email)
		if !got.Valid {
			require.Equal(t, MsgEmailDomain, got.Error)
		}
	})
}

func TestPassword(t *testing.T) {
	strong := Password("Abcdef1!")
	require.True(t, strong.Strong)
	require.Empty(t, strong.Errors)

	noUpper := Password("abcdef1!")
	require.False(t, noUpper.Strong)
	require.Contains(t, noUpper.Errors, MsgPasswordUppercase)

	require.Equal(t, []string{MsgPasswordRequired}, Password("").Errors)

	// Length counts characters, so a seven character password with a
	// two-byte letter is still too short.
	accented := Password("Abcdé1!")
	require.False(t, accented.Strong)
	require.Equal(t, []string{MsgPasswordLength}, accented.Errors)
	require.True(t, Password("Abcdéf1!").Strong)

	weak := Password("abc")
	require.ElementsMatch(t, []string{
		MsgPasswordLength,
		MsgPasswordUppercase,
		MsgPasswordNumber,
		MsgPasswordSpecial,
	}, weak.Errors)
}

func TestProperty_PasswordStrongIffAllRequirements(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pw := rapid.StringMatching(`[A-Za-z0-9!@#?_ éßÄ€日]{0,14}`).Draw(rt, "password")

		var upper, lower, digit, special bool
		for _, r := range pw {
			switch {
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= '0' && r <= '9':
				digit = true
			case strings.ContainsRune("!@#?_", r):
				special = true
			}
		}
		want := utf8.RuneCountInString(pw) >= MinPasswordLength && upper && lower && digit && special

		got := Password(pw)
		require.Equal(t, want, got.Strong, "password %q", pw)
		require.Equal(t, want, len(got.Errors) == 0)
	})
}

func TestNewPassword(t *testing.T) {
	require.Empty(t, NewPassword("Str0ng!Pass", "Str0ng!Pass"))
	require.Equal(t, []string{MsgPasswordMismatch}, NewPassword("Str0ng!Pass", "Str0ng!Pas"))
}

func TestOTP(t *testing.T) {
	require.True(t, OTP("123456"))
	require.False(t, OTP("12345"))
	require.False(t, OTP("12345a"))
	require.False(t, OTP("1234567"))
}
