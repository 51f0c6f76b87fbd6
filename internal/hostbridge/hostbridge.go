// Package hostbridge reads the user identity handed over by the Telegram
// WebApp host as its URL-encoded init data string.
package hostbridge

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"sort"
	"strings"

	"github.com/naveenspark/sdvig/pkg/domain"
)

// ErrNoUser is returned when the init data carries no user field.
var ErrNoUser = errors.New("init data has no user")

// ErrBadSignature is returned when the init data hash does not match.
var ErrBadSignature = errors.New("init data signature mismatch")

type hostUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	PhotoURL  string `json:"photo_url"`
}

// ParseInitData extracts the user from raw init data. Missing fields are left
// zero.
func ParseInitData(raw string) (domain.User, error) {
	values, err := url.ParseQuery(strings.TrimSpace(raw))
	if err != nil {
		return domain.User{}, fmt.Errorf("hostbridge.ParseInitData: %w", err)
	}
	userJSON := values.Get("user")
	if userJSON == "" {
		return domain.User{}, ErrNoUser
	}
	var u hostUser
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
		return domain.User{}, fmt.Errorf("hostbridge.ParseInitData: user: %w", err)
	}
	return domain.User{ID: u.ID, FirstName: u.FirstName, PhotoURL: u.PhotoURL}, nil
}

// Resolve returns the host user with per-field fallbacks, or ok=false when
// raw holds no usable user so the caller keeps its persisted identity.
func Resolve(raw string) (domain.User, bool) {
	if strings.TrimSpace(raw) == "" {
		return domain.User{}, false
	}
	u, err := ParseInitData(raw)
	if err != nil {
		return domain.User{}, false
	}
	if u.ID == 0 {
		u.ID = RandomUserID()
	}
	if u.FirstName == "" {
		u.FirstName = domain.FallbackUserName
	}
	if u.PhotoURL == "" {
		u.PhotoURL = domain.PlaceholderPhotoURL
	}
	return u, true
}

// RandomUserID returns an eight-digit id for users the host did not identify.
func RandomUserID() int64 {
	return 10_000_000 + rand.Int64N(90_000_000)
}

// DefaultUser is the identity used before any host data arrives.
func DefaultUser() domain.User {
	return domain.User{
		ID:        RandomUserID(),
		FirstName: domain.DefaultUserName,
		PhotoURL:  domain.PlaceholderPhotoURL,
	}
}

// Verify checks the init data hash against botToken.
func Verify(raw, botToken string) error {
	values, err := url.ParseQuery(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("hostbridge.Verify: %w", err)
	}
	got := values.Get("hash")
	if got == "" {
		return ErrBadSignature
	}
	want := Sign(values, botToken)
	if !hmac.Equal([]byte(got), []byte(want)) {
		return ErrBadSignature
	}
	return nil
}

// Sign computes the hex hash Telegram attaches to init data: HMAC-SHA256 of
// the sorted key=value lines (hash excluded) keyed by HMAC("WebAppData", token).
func Sign(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
