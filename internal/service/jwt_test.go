package service

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	for _, tok := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := ParseJWT(tok); err == nil {
			t.Errorf("ParseJWT(%q) succeeded, want error", tok)
		}
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateJWT(7)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	InitJWT("secret-two")
	if _, err := ParseJWT(token); err == nil {
		t.Error("token signed with another secret parsed successfully")
	}
}
