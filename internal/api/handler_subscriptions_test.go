package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupSubscriptionRouter() *gin.Engine {
	r := gin.New()
	handler := NewHandler(nil, nil, Options{})
	r.PUT("/api/subscriptions", handler.PutSubscription)
	r.GET("/api/vapid_public_key", handler.GetVAPIDPublicKey)
	return r
}

func TestPutSubscription_InvalidBody(t *testing.T) {
	router := setupSubscriptionRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}

func TestGetVAPIDPublicKey(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/vapid_public_key", nil)
	setupSubscriptionRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"enabled":false}`, w.Body.String())

	r := gin.New()
	r.GET("/api/vapid_public_key", NewHandler(nil, &webpush.Options{VAPIDPublicKey: "BPub"}, Options{}).GetVAPIDPublicKey)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"enabled":true,"public_key":"BPub"}`, w.Body.String())
}

func TestSubscriptionLifecycle(t *testing.T) {
	ts := newTestServer(t)
	endpoint := "https://push.example.com/send/abc%2Bdef"

	w := ts.do(http.MethodPut, "/api/subscriptions", 1, gin.H{"endpoint": endpoint, "p256dh": "key", "auth": "secret"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = ts.do(http.MethodPut, "/api/subscriptions", 1, gin.H{"endpoint": endpoint, "p256dh": "key2", "auth": "secret2"})
	assert.Equal(t, http.StatusCreated, w.Code, "the owner refreshes its keys")
	w = ts.do(http.MethodPut, "/api/subscriptions", 2, gin.H{"endpoint": endpoint, "p256dh": "key", "auth": "secret"})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = ts.do(http.MethodPut, "/api/subscriptions", 1, gin.H{"endpoint": "not a url", "p256dh": "key", "auth": "secret"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The endpoint is matched without URL decoding.
	w = ts.do(http.MethodGet, "/api/subscriptions?endpoint="+endpoint, 1, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.do(http.MethodGet, "/api/subscriptions?endpoint="+url.QueryEscape("https://push.example.com/send/abc+def"), 1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(http.MethodGet, "/api/subscriptions?endpoint="+endpoint, 2, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(http.MethodGet, "/api/subscriptions", 1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodDelete, "/api/subscriptions", 2, gin.H{"endpoint": endpoint})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(http.MethodDelete, "/api/subscriptions", 1, gin.H{"endpoint": endpoint})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(http.MethodGet, "/api/subscriptions?endpoint="+endpoint, 1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
