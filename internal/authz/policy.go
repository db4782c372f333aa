// Package authz decides which identities get admin privileges. The default
// policy is a plain email allowlist; it stands in for a real authorization
// backend and is the one place to swap when that arrives.
package authz

import "strings"

// Policy maps a session identity to the admin privilege.
type Policy interface {
	IsAdmin(email string) bool
}

// EmailAllowlist grants admin to an exact (case-insensitive) set of emails.
type EmailAllowlist struct {
	emails map[string]struct{}
}

func NewEmailAllowlist(emails []string) *EmailAllowlist {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		set[e] = struct{}{}
	}
	return &EmailAllowlist{emails: set}
}

func (a *EmailAllowlist) IsAdmin(email string) bool {
	if a == nil {
		return false
	}
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
