package dto

// TokenResponse is returned when an API bearer token is minted from a live
// web session.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"` // seconds until expiry
}

// SessionUser is the signed-in user as exposed to templates and the
// /api/v1/auth/me endpoint.
type SessionUser struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Photo   string `json:"photo"`
	IsAdmin bool   `json:"isAdmin"`
}
