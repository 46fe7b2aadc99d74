// Package tenant derives the data-partition identifier for a request. A
// tenant is one clinic's isolated partition, named after the local part of
// the operator's login e-mail; service accounts may carry an explicit tenant
// id instead.
package tenant

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoTenant is returned when neither an e-mail nor an explicit tenant id
// yields a usable identifier.
var ErrNoTenant = errors.New("no tenant identifier")

// slugRE strips everything that is not safe in a tenant identifier.
var slugRE = regexp.MustCompile(`[^a-z0-9._-]+`)

// FromEmail derives a tenant id from a login e-mail's local part, lowercased
// and slugged. "Front.Desk@happypaws.example" becomes "front.desk".
func FromEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "", ErrNoTenant
	}
	local := slugRE.ReplaceAllString(email[:at], "")
	if local == "" {
		return "", ErrNoTenant
	}
	return local, nil
}

// Resolve picks the tenant for a request: an explicit id wins (service and
// super-admin accounts), otherwise the id is derived from the e-mail.
func Resolve(explicitID, email string) (string, error) {
	if id := strings.TrimSpace(strings.ToLower(explicitID)); id != "" {
		if slugRE.ReplaceAllString(id, "") != id {
			return "", ErrNoTenant
		}
		return id, nil
	}
	return FromEmail(email)
}
