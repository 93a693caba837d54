package entities

import "time"

// Administrator is one role grant. Revocation keeps the row for audit.
type Administrator struct {
	Address   string
	GrantedBy string
	GrantedAt time.Time
	Revoked   bool
	RevokedBy string
	RevokedAt *time.Time
}

// Active reports whether the grant currently confers the role.
func (a Administrator) Active() bool {
	return a.Address != "" && !a.Revoked
}
