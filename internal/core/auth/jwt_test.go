package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	j := &JWTer{Secret: []byte("s3cret"), Issuer: "devconnector"}
	tok, err := j.Issue("u1", "Ann", "//avatar", "user")
	if err != nil {
		t.Fatal(err)
	}
	c, err := j.Parse(tok)
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != "u1" || c.Name != "Ann" || c.Avatar != "//avatar" || c.Role != "user" {
		t.Errorf("unexpected claims %+v", c)
	}
	if got := c.ExpiresAt.Sub(c.IssuedAt.Time); got != DefaultTTL {
		t.Errorf("ttl = %v, want %v", got, DefaultTTL)
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "devconnector", now: func() time.Time { return issued }}
	tok, err := j.Issue("u1", "Ann", "", "")
	if err != nil {
		t.Fatal(err)
	}

	expired := &JWTer{Secret: j.Secret, Issuer: j.Issuer, now: func() time.Time { return issued.Add(8 * 24 * time.Hour) }}
	otherKey := &JWTer{Secret: []byte("other"), Issuer: j.Issuer, now: j.now}
	otherIss := &JWTer{Secret: j.Secret, Issuer: "someone-else", now: j.now}

	cases := map[string]struct {
		j   *JWTer
		tok string
	}{
		"expired":     {expired, tok},
		"bad key":     {otherKey, tok},
		"bad issuer":  {otherIss, tok},
		"malformed":   {j, "not.a.token"},
		"empty token": {j, ""},
	}
	for name, tc := range cases {
		if _, err := tc.j.Parse(tc.tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestIssueRequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := (&JWTer{}).Issue("u1", "", "", ""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
