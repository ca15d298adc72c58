package auth

import "strings"

// AllowList is the fixed set of emails permitted administrative access.
// Membership checks normalize the candidate the same way config normalizes
// the list (trim + lowercase), so matching is case-insensitive.
type AllowList map[string]struct{}

// NewAllowList builds an allow-list from configured admin emails.
func NewAllowList(emails []string) AllowList {
	l := make(AllowList, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			l[e] = struct{}{}
		}
	}
	return l
}

// Contains reports whether email is on the allow-list.
func (l AllowList) Contains(email string) bool {
	_, ok := l[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
