package models

import "testing"

func TestCredentialKind_Valid(t *testing.T) {
	for _, kind := range []CredentialKind{CredentialPassword, CredentialPIN, CredentialRecovery} {
		if !kind.Valid() {
			t.Errorf("%q should be valid", kind)
		}
	}
	if CredentialKind("fingerprint").Valid() {
		t.Error("unknown kind should not be valid")
	}
}

func TestCredentialSet_ByKind(t *testing.T) {
	set := CredentialSet{
		Credentials: []WrappingCredential{
			{Kind: CredentialPassword, KDFCost: "a"},
			{Kind: CredentialRecovery, KDFCost: "b"},
		},
	}

	cred, ok := set.ByKind(CredentialRecovery)
	if !ok || cred.KDFCost != "b" {
		t.Errorf("expected recovery credential, got %+v ok=%v", cred, ok)
	}

	if _, ok = set.ByKind(CredentialPIN); ok {
		t.Error("expected no pin credential")
	}
}

func TestCredentialSet_WithoutKind(t *testing.T) {
	set := CredentialSet{
		Credentials: []WrappingCredential{
			{Kind: CredentialPassword},
			{Kind: CredentialPIN},
			{Kind: CredentialRecovery},
		},
	}

	rest := set.WithoutKind(CredentialPIN)
	if len(rest) != 2 {
		t.Fatalf("expected 2 credentials, got %d", len(rest))
	}
	for _, c := range rest {
		if c.Kind == CredentialPIN {
			t.Error("pin credential should have been removed")
		}
	}

	rest = set.WithoutKind(CredentialPassword, CredentialRecovery)
	if len(rest) != 1 || rest[0].Kind != CredentialPIN {
		t.Errorf("expected only the pin credential to remain, got %+v", rest)
	}

	if got := set.WithoutKind(); len(got) != 3 {
		t.Errorf("no kinds removed should keep all 3, got %d", len(got))
	}
}
