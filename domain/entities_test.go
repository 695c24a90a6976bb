package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestOneTimeCode_Expired(t *testing.T) {
	now := time.Now()
	code := &OneTimeCode{ExpiresAt: now.Add(10 * time.Minute)}

	if code.Expired(now) {
		t.Error("code must be live before its expiry")
	}
	if !code.Expired(now.Add(10 * time.Minute)) {
		t.Error("code must be absent at the expiry instant")
	}
	if !code.Expired(now.Add(time.Hour)) {
		t.Error("code must be absent after expiry")
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range VideoCategories {
		if !ValidCategory(c) {
			t.Errorf("%q must be a valid category", c)
		}
	}
	for _, c := range []string{"", "Education", "podcast"} {
		if ValidCategory(c) {
			t.Errorf("%q must not be a valid category", c)
		}
	}
}

func TestUser_PublicOmitsSecrets(t *testing.T) {
	u := &User{
		ID:           1,
		FullName:     "Ada Example",
		Email:        "ada@example.com",
		PasswordHash: "$2a$12$secret",
		Role:         RoleUser,
		RefreshToken: "live-refresh-token",
	}

	raw, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	if strings.Contains(body, "secret") || strings.Contains(body, "live-refresh-token") {
		t.Errorf("public projection leaks credentials: %s", body)
	}
	if !strings.Contains(body, "ada@example.com") {
		t.Errorf("public projection lost visible fields: %s", body)
	}
}
