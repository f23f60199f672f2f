package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"testing"
	"time"
)

const testBotToken = "1234:pixel-plaza-test-token"

// signInitData assembles init data the way the Telegram client would,
// signed for the given bot token.
func signInitData(t *testing.T, botToken string, fields url.Values) string {
	t.Helper()

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(initDataCheckString(fields)))

	signed := url.Values{}
	for k, v := range fields {
		signed[k] = v
	}
	signed.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return signed.Encode()
}

func playerFields(authDate time.Time) url.Values {
	vals := url.Values{}
	vals.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	vals.Set("user", `{"id":8821,"username":"pixel_pioneer","first_name":"Pia"}`)
	return vals
}

func TestValidateTelegramInitData(t *testing.T) {
	t.Run("valid login", func(t *testing.T) {
		initData := signInitData(t, testBotToken, playerFields(time.Now()))

		vals, ok := ValidateTelegramInitData(initData, testBotToken)
		if !ok {
			t.Fatal("expected valid init data")
		}
		if vals.Get("user") == "" {
			t.Error("user field missing from validated values")
		}
	})

	t.Run("extra field breaks the signature", func(t *testing.T) {
		initData := signInitData(t, testBotToken, playerFields(time.Now()))
		if _, ok := ValidateTelegramInitData(initData+"&start_param=ref_FAKE", testBotToken); ok {
			t.Fatal("tampered init data accepted")
		}
	})

	t.Run("wrong bot token", func(t *testing.T) {
		initData := signInitData(t, "9999:other-bot", playerFields(time.Now()))
		if _, ok := ValidateTelegramInitData(initData, testBotToken); ok {
			t.Fatal("init data signed for another bot accepted")
		}
	})

	t.Run("stale auth date", func(t *testing.T) {
		initData := signInitData(t, testBotToken, playerFields(time.Now().Add(-2*time.Hour)))
		if _, ok := ValidateTelegramInitData(initData, testBotToken); ok {
			t.Fatal("replayed init data accepted")
		}
	})

	t.Run("auth date from the future", func(t *testing.T) {
		initData := signInitData(t, testBotToken, playerFields(time.Now().Add(30*time.Minute)))
		if _, ok := ValidateTelegramInitData(initData, testBotToken); ok {
			t.Fatal("forward-dated init data accepted")
		}
	})

	t.Run("missing hash", func(t *testing.T) {
		if _, ok := ValidateTelegramInitData(playerFields(time.Now()).Encode(), testBotToken); ok {
			t.Fatal("unsigned init data accepted")
		}
	})
}
