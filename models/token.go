package models

// Token is a signed session token issued by the vault server after a
// successful login, together with the user id parsed from its claims.
type Token struct {
	SignedString string `json:"token"`
	UserID       int64  `json:"user_id"`
}
