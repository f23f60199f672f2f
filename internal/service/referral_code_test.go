package service

import (
	"strings"
	"testing"

	"pixel_plaza/internal/config"
)

func TestGenerateReferralCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		code, err := generateReferralCode()
		if err != nil {
			t.Fatalf("generateReferralCode: %v", err)
		}
		if len(code) != config.ReferralCodeLength {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), config.ReferralCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(referralAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}

	// 32^8 codes; 200 draws colliding would mean a broken generator.
	if len(seen) < 190 {
		t.Errorf("only %d distinct codes out of 200", len(seen))
	}
}

func TestReferralAlphabetAvoidsLookalikes(t *testing.T) {
	for _, banned := range "0O1Il" {
		if strings.ContainsRune(referralAlphabet, banned) {
			t.Errorf("alphabet contains ambiguous character %q", banned)
		}
	}
}
