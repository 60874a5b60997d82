package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

func guarded(auth *RepairAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/repair", auth.Require(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("repair_subject"))
	})
	return r
}

func call(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/repair", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRepairAuthDisabledWithoutSecret(t *testing.T) {
	auth := NewRepairAuth(logger.Nop(), "  ")
	if auth.Enabled() {
		t.Fatalf("enabled: want=false")
	}
	if rec := call(guarded(auth), ""); rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d", http.StatusOK, rec.Code)
	}
}

func TestRepairAuthRequiresValidToken(t *testing.T) {
	const secret = "s3cret"
	r := guarded(NewRepairAuth(logger.Nop(), secret))

	good, err := SignRepairToken(secret, "ops", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec := call(r, "Bearer "+good)
	if rec.Code != http.StatusOK || rec.Body.String() != "ops" {
		t.Fatalf("valid token: got status=%d body=%q", rec.Code, rec.Body.String())
	}

	wrongKey, _ := SignRepairToken("other", "ops", time.Minute)
	expired, _ := SignRepairToken(secret, "ops", -time.Hour)
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "ops"}).SignedString([]byte(secret))
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(secret))

	cases := map[string]string{
		"missing":    "",
		"not bearer": "Basic abc",
		"wrong key":  "Bearer " + wrongKey,
		"expired":    "Bearer " + expired,
		"no exp":     "Bearer " + noExp,
		"hs512":      "Bearer " + hs512,
	}
	for name, header := range cases {
		if rec := call(r, header); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: want=%d got=%d", name, http.StatusUnauthorized, rec.Code)
		}
	}
}
