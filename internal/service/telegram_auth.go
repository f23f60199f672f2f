package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// A signed login older than this is treated as a replay. One hour covers
	// players who leave the webapp open on the game screen for a while.
	initDataMaxAge = time.Hour
	// Tolerated forward clock skew between Telegram and the game server.
	initDataMaxSkew = 5 * time.Minute
)

// ValidateTelegramInitData checks the signature Telegram attaches to WebApp
// init data and rejects stale payloads. On success it returns the parsed
// fields (user, start_param, auth_date) for the login flow.
func ValidateTelegramInitData(initData, botToken string) (url.Values, bool) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, false
	}

	provided, err := hex.DecodeString(values.Get("hash"))
	if err != nil || len(provided) == 0 {
		return nil, false
	}
	values.Del("hash")

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, false
	}
	age := time.Since(time.Unix(authDate, 0))
	if age > initDataMaxAge || age < -initDataMaxSkew {
		return nil, false
	}

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(initDataCheckString(values)))
	if !hmac.Equal(mac.Sum(nil), provided) {
		return nil, false
	}

	return values, true
}

// initDataCheckString builds the newline-joined key=value list Telegram
// signs: every field except hash, sorted by key.
func initDataCheckString(values url.Values) string {
	pairs := make([]string, 0, len(values))
	for k, v := range values {
		pairs = append(pairs, k+"="+strings.Join(v, ""))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\n")
}
