package identity

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserIDPrefix is prepended to every derived user id.
const UserIDPrefix = "usr_"

const (
	DefaultDisplayName = "Test User" // Shown when no session is bound
	DefaultInitials    = "TS"
)

// NormalizeEmail lower-cases and trims an email address. Lower-casing applies the full
// Unicode special-casing rules (İ becomes i̇, word-final Σ becomes ς) so ids agree with
// those minted in the browser.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(cases.Lower(language.Und).String(email))
}

// DeriveUserID maps an email address to a stable opaque identifier of the form usr_xxxxxxxx.
// The hash runs over UTF-16 code units with 32-bit signed wraparound so ids match those minted
// by the browser page for the same address.
func DeriveUserID(email string) string {
	var hash int32
	for _, unit := range utf16.Encode([]rune(NormalizeEmail(email))) {
		hash = hash*31 + int32(unit)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return fmt.Sprintf("%s%08x", UserIDPrefix, abs)
}

// LooksLikeEmail reports whether the input is worth previewing an id for.
func LooksLikeEmail(s string) bool {
	return s != "" && strings.Contains(s, "@")
}

// DisplayName falls back to the local part of the email when no name was given.
func DisplayName(name, email string) string {
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

// Initials returns up to two upper-cased initials taken from the words of name.
// Each initial is a whole character, including ones outside the Basic Multilingual Plane.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		initials = append(initials, []rune(word)[0])
		if len(initials) == 2 {
			break
		}
	}
	return cases.Upper(language.Und).String(string(initials))
}
