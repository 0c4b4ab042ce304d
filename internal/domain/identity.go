package domain

import "regexp"

// guestEmailPattern tags throwaway identities minted by the guest issuance
// endpoint. The match is lexical only: nothing stops a registrant from
// choosing such an email, in which case they are treated as a guest
// everywhere.
var guestEmailPattern = regexp.MustCompile(`^guest-\d+$`)

// IsGuestEmail reports whether email identifies a guest session. Full-string
// match, no partial matches.
func IsGuestEmail(email string) bool {
	return guestEmailPattern.MatchString(email)
}
