package domain

// TokenStatus classifies a bearer token presented by a client.
type TokenStatus string

const (
	TokenStatusValid   TokenStatus = "valid"
	TokenStatusExpired TokenStatus = "expired"
	TokenStatusInvalid TokenStatus = "invalid"
)
