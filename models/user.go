package models

import "time"

// User is an account record. Verifier is a one-way hash derived on the
// client from the password-derived key; the server compares it on login but
// cannot recover the password or any key material from it. Accounts created
// through an external identity provider may have an empty Verifier until a
// password is adopted.
type User struct {
	UserID    int64     `json:"user_id"`
	Login     string    `json:"login"`
	Name      string    `json:"name,omitempty"`
	Verifier  string    `json:"verifier,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
