package domain

// Principal is the authenticated identity attached to a request after the
// credential has been resolved to an active user.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Owns compares a stored reference against the principal's id. All ownership
// checks in the authorization engine reduce to this string comparison.
func (p Principal) Owns(ref string) bool {
	return ref != "" && ref == p.ID
}
