package mw

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const tenantKey = "tenantID"

// Tenant resolves the acting tenant for every request. With a secret the
// tenant is the numeric subject of an HS256 bearer token; without one it is
// read from header.
func Tenant(secret, header string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		var (
			id  int64
			err error
		)
		if secret != "" {
			id, err = tenantFromToken(c.GetHeader("Authorization"), key)
		} else {
			id, err = parseTenantID(c.GetHeader(header))
		}
		if err != nil {
			log.Printf("tenant error: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(tenantKey, id)
		c.Next()
	}
}

// TenantID returns the tenant resolved by the Tenant middleware.
func TenantID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(tenantKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func tenantFromToken(authorization string, key []byte) (int64, error) {
	raw, found := strings.CutPrefix(authorization, "Bearer ")
	if !found || strings.TrimSpace(raw) == "" {
		return 0, fmt.Errorf("missing bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return 0, err
	}
	if !tkn.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	return parseTenantID(claims.Subject)
}

func parseTenantID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid tenant id %q", raw)
	}
	return id, nil
}
