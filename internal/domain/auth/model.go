package auth

// Claims is the identity resolved from a session credential by the
// external auth service.
type Claims struct {
	UserID string
	Email  string
}

// Principal is the canonical caller identity attached to a request.
// It is reconstructed on every request and never persisted.
type Principal struct {
	ID          string
	Email       string
	DisplayName string
	BusinessID  string
}
