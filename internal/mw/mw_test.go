package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func tenantEcho(c *gin.Context) {
	id, _ := TenantID(c)
	c.String(http.StatusOK, "%d", id)
}

func signed(t *testing.T, secret, subject string, method jwt.SigningMethod) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestTenant_Header(t *testing.T) {
	router := gin.New()
	router.Use(Tenant("", "X-Tenant-ID"))
	router.GET("/", tenantEcho)

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "Valid tenant", header: "42", wantStatus: http.StatusOK, wantBody: "42"},
		{name: "Missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "Not a number", header: "abc", wantStatus: http.StatusUnauthorized},
		{name: "Zero", header: "0", wantStatus: http.StatusUnauthorized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("X-Tenant-ID", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, w.Body.String())
			}
		})
	}
}

func TestTenant_JWT(t *testing.T) {
	const secret = "s3cret"
	router := gin.New()
	router.Use(Tenant(secret, "X-Tenant-ID"))
	router.GET("/", tenantEcho)

	testCases := []struct {
		name       string
		auth       string
		wantStatus int
	}{
		{name: "Valid token", auth: "Bearer " + signed(t, secret, "9", jwt.SigningMethodHS256), wantStatus: http.StatusOK},
		{name: "Wrong secret", auth: "Bearer " + signed(t, "other", "9", jwt.SigningMethodHS256), wantStatus: http.StatusUnauthorized},
		{name: "Wrong algorithm", auth: "Bearer " + signed(t, secret, "9", jwt.SigningMethodHS512), wantStatus: http.StatusUnauthorized},
		{name: "Non-numeric subject", auth: "Bearer " + signed(t, secret, "hotel", jwt.SigningMethodHS256), wantStatus: http.StatusUnauthorized},
		{name: "No bearer", auth: "", wantStatus: http.StatusUnauthorized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tc.auth)
			// The header is ignored once a secret is configured.
			req.Header.Set("X-Tenant-ID", "1")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, "9", w.Body.String())
			}
		})
	}
}

func TestCache_PerTenant(t *testing.T) {
	calls := 0
	router := gin.New()
	router.Use(Tenant("", "X-Tenant-ID"))
	router.Use(NewResponseCache(time.Minute).Handler())
	router.GET("/types", func(c *gin.Context) {
		calls++
		id, _ := TenantID(c)
		c.String(http.StatusOK, "%d:%d", id, calls)
	})

	get := func(tenant string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/types", nil)
		req.Header.Set("X-Tenant-ID", tenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := get("1")
	assert.Equal(t, "1:1", first.Body.String())
	second := get("1")
	assert.Equal(t, "1:1", second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "2:2", get("2").Body.String())
	assert.Equal(t, 2, calls)
}

func TestCache_FlushAndErrors(t *testing.T) {
	calls := 0
	status := http.StatusInternalServerError
	rc := NewResponseCache(time.Minute)
	router := gin.New()
	router.Use(rc.Handler())
	router.GET("/types", func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"calls": calls})
	})

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/types", nil))
		return w
	}

	get()
	status = http.StatusOK
	w := get()
	assert.JSONEq(t, `{"calls":2}`, w.Body.String())
	w = get()
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"calls":2}`, w.Body.String())

	rc.Flush()
	assert.JSONEq(t, `{"calls":3}`, get().Body.String())
}

func TestRateLimiter(t *testing.T) {
	router := gin.New()
	router.Use(Tenant("", "X-Tenant-ID"))
	router.Use(RateLimiter(1, 2))
	router.GET("/", tenantEcho)

	statuses := func(tenant string, n int) []int {
		var codes []int
		for i := 0; i < n; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Tenant-ID", tenant)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}
		return codes
	}

	assert.Equal(t, []int{200, 200, 429}, statuses("1", 3))
	assert.Equal(t, []int{200}, statuses("2", 1), "each tenant has its own bucket")
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s", c.GetString("requestID"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
