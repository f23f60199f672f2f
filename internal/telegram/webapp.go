package telegram

import (
	"encoding/json"
	"net/url"
	"strings"

	"pixel_plaza/internal/service"
)

// WebAppUser is the user object embedded in WebApp init data.
type WebAppUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// ValidateInitData checks the WebApp init data HMAC and freshness.
func ValidateInitData(initData, botToken string) bool {
	_, ok := service.ValidateTelegramInitData(initData, botToken)
	return ok
}

// ParseUser extracts the user object from init data.
func ParseUser(initData string) (*WebAppUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, err
	}

	var user WebAppUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ParseReferralCode extracts a referral code from the start_param, if the
// WebApp was opened through an invite link (startapp=ref_CODE).
func ParseReferralCode(initData string) string {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return ""
	}
	param := values.Get("start_param")
	if code, ok := strings.CutPrefix(param, "ref_"); ok {
		return code
	}
	return ""
}
