package telegram

import (
	"net/url"
	"testing"
)

func TestParseUser(t *testing.T) {
	vals := url.Values{}
	vals.Set("user", `{"id":12345,"username":"pixel_fan","first_name":"Pix"}`)
	vals.Set("auth_date", "1700000000")

	user, err := ParseUser(vals.Encode())
	if err != nil {
		t.Fatalf("ParseUser: %v", err)
	}
	if user.ID != 12345 || user.Username != "pixel_fan" || user.FirstName != "Pix" {
		t.Errorf("user = %+v", user)
	}
}

func TestParseUserInvalid(t *testing.T) {
	if _, err := ParseUser("user=not-json"); err == nil {
		t.Error("expected error for malformed user payload")
	}
	if _, err := ParseUser("%zz"); err == nil {
		t.Error("expected error for malformed query")
	}
}

func TestParseReferralCode(t *testing.T) {
	tests := []struct {
		name     string
		initData string
		want     string
	}{
		{"invite link", "start_param=ref_AB23CD45&auth_date=1", "AB23CD45"},
		{"no start param", "auth_date=1", ""},
		{"foreign start param", "start_param=promo_x", ""},
		{"bare prefix", "start_param=ref_", ""},
		{"malformed query", "%zz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseReferralCode(tt.initData); got != tt.want {
				t.Errorf("ParseReferralCode(%q) = %q, want %q", tt.initData, got, tt.want)
			}
		})
	}
}
