package models

// RegisterRequest creates an account together with its initial credential
// set, so a user is never persisted in a half-provisioned state with no way
// to unwrap the content key.
type RegisterRequest struct {
	User        User                 `json:"user"`
	Credentials []WrappingCredential `json:"credentials"`
}

// LoginRequest authenticates with the client-computed verifier. The server
// never sees the password itself.
type LoginRequest struct {
	Login    string `json:"login"`
	Verifier string `json:"verifier"`
}

// ReplaceCredentialSetRequest atomically replaces the whole credential set
// of a user. ExpectedVersion must match the server-side version or the
// request is rejected with a conflict. NewVerifier is set when the rotation
// also changed the login password.
type ReplaceCredentialSetRequest struct {
	UserID          int64                `json:"user_id"`
	ExpectedVersion int64                `json:"expected_version"`
	Credentials     []WrappingCredential `json:"credentials"`
	NewVerifier     string               `json:"new_verifier,omitempty"`
}
