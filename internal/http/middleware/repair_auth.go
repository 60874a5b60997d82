package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/albertshemyakin2009-sys/noolix/internal/http/response"
	"github.com/albertshemyakin2009-sys/noolix/internal/platform/logger"
)

// RepairAuth guards the manual repair routes with an HS256 bearer token.
// With an empty secret every request passes.
type RepairAuth struct {
	log    *logger.Logger
	secret []byte
}

func NewRepairAuth(log *logger.Logger, secret string) *RepairAuth {
	return &RepairAuth{
		log:    log.With("Middleware", "RepairAuth"),
		secret: []byte(strings.TrimSpace(secret)),
	}
}

func (a *RepairAuth) Enabled() bool { return a != nil && len(a.secret) > 0 }

func (a *RepairAuth) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, errors.New("missing or invalid token"))
			return
		}
		claims, err := a.parse(tokenString)
		if err != nil {
			a.log.Debug("repair token rejected", "error", err)
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, errors.New("missing or invalid token"))
			return
		}
		c.Set("repair_subject", claims.Subject)
		c.Next()
	}
}

func (a *RepairAuth) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	claims := &jwt.RegisteredClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SignRepairToken issues a token RepairAuth accepts.
func SignRepairToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(strings.TrimSpace(secret)))
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
