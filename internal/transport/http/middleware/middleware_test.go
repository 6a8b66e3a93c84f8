package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"devconnector/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(h http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.String(http.StatusOK, "ok") }

func TestRateLimitRejectsOverBurst(t *testing.T) {
	t.Parallel()
	r := gin.New()
	r.GET("/x", RateLimit(0.0001, 2), ok)

	codes := []int{}
	for range 3 {
		codes = append(codes, serve(r, nil).Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

func TestRateLimitPerIPIsolatesClients(t *testing.T) {
	t.Parallel()
	r := gin.New()
	r.GET("/x", RateLimitPerIP(0.0001, 1), ok)

	req := func(ip string) int {
		rq := httptest.NewRequest(http.MethodGet, "/x", nil)
		rq.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, rq)
		return w.Code
	}
	if req("10.0.0.1") != http.StatusOK || req("10.0.0.1") != http.StatusTooManyRequests {
		t.Fatal("first client not limited")
	}
	if req("10.0.0.2") != http.StatusOK {
		t.Fatal("second client affected by first")
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	r := gin.New()
	r.GET("/x", RequestID(), ok)

	if got := serve(r, map[string]string{KeyRequestID: "abc"}).Header().Get(KeyRequestID); got != "abc" {
		t.Fatalf("echo = %q", got)
	}
	long := strings.Repeat("a", maxRequestIDLen+1)
	if got := serve(r, map[string]string{KeyRequestID: long}).Header().Get(KeyRequestID); got == long || got == "" {
		t.Fatalf("oversized id not replaced: %q", got)
	}
}

type fakeResolver map[string]*domain.User

func (f fakeResolver) ResolvePrincipal(_ context.Context, token string) (*domain.User, error) {
	if u, ok := f[token]; ok {
		return u, nil
	}
	return nil, domain.Unauthorized(http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
}

func TestAuthJWT(t *testing.T) {
	t.Parallel()
	res := fakeResolver{
		"Bearer u": {ID: "1", Role: domain.RoleUser},
		"Bearer a": {ID: "2", Role: domain.RoleAdmin},
	}
	r := gin.New()
	r.GET("/x", AuthJWT(res, domain.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, Principal(c).ID+"/"+c.GetString(KeyUserID))
	})

	cases := []struct {
		auth string
		want int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer u", http.StatusForbidden},
		{"Bearer a", http.StatusOK},
	}
	for _, tc := range cases {
		w := serve(r, map[string]string{"Authorization": tc.auth})
		if w.Code != tc.want {
			t.Fatalf("auth %q: %d, want %d", tc.auth, w.Code, tc.want)
		}
		if tc.want == http.StatusOK && w.Body.String() != "2/2" {
			t.Fatalf("body = %q", w.Body)
		}
	}
}

func TestMaxBodyBytes(t *testing.T) {
	t.Parallel()
	r := gin.New()
	r.POST("/x", MaxBodyBytes(4), ok)

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("0123456789"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestMaskHidesSecrets(t *testing.T) {
	t.Parallel()
	got := mask(map[string][]string{"Password": {"x"}, "q": {"go"}})
	if got["Password"][0] != "****" || got["q"][0] != "go" {
		t.Fatalf("mask = %v", got)
	}
}
