package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-ops-backend/internal/model"
)

type putSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required,url"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

// PutSubscription registers a device to receive the tenant's urgent notifications.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	subscription := model.PushSubscription{
		Endpoint: req.Endpoint,
		TenantID: tenantOf(c),
		P256DH:   req.P256DH,
		Auth:     req.Auth,
	}
	if err := h.store.PutSubscription(c.Request.Context(), &subscription); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription handles the deletion of a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.store.DeleteSubscription(c.Request.Context(), tenantOf(c), req.Endpoint); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// rawQueryParam reads a query value without URL-decoding it, since push
// endpoints are matched byte for byte.
func rawQueryParam(rawQuery, key string) (string, bool) {
	for _, kv := range strings.Split(rawQuery, "&") {
		if strings.HasPrefix(kv, key+"=") {
			return kv[len(key)+1:], true
		}
	}
	return "", false
}

// GetSubscription reports whether a device is subscribed.
func (h *Handler) GetSubscription(c *gin.Context) {
	raw, ok := rawQueryParam(c.Request.URL.RawQuery, "endpoint")
	if !ok || raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	subscription, err := h.store.GetSubscription(c.Request.Context(), tenantOf(c), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"endpoint": subscription.Endpoint, "created_at": subscription.CreatedAt})
}

// GetVAPIDPublicKey tells a device whether web push is available and, if so,
// which application server key to subscribe with.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	if h.webpush == nil || h.webpush.VAPIDPublicKey == "" {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": true, "public_key": h.webpush.VAPIDPublicKey})
}
