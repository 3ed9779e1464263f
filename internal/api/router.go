package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"hotel-ops-backend/config"
	"hotel-ops-backend/internal/mw"
	"hotel-ops-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, webpushOptions *webpush.Options, push Dispatcher) *gin.Engine {
	return newRouter(s, cfg, webpushOptions, Options{Push: push})
}

// newRouter builds the engine; opts supplies what the config does not, such as the clock.
func newRouter(s store.Store, cfg *config.Config, webpushOptions *webpush.Options, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestID())
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", cfg.Auth.TenantHeader, mw.RequestIDHeader},
		ExposeHeaders: []string{mw.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if allowsAll(cfg.Server.CORSOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))
	registerValidators()

	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	responses := mw.NewResponseCache(ttl)
	caching := responses.Handler()

	opts.Location = cfg.Hotel.Location
	opts.SearchLimit = cfg.Hotel.SearchLimit
	opts.LogLimit = cfg.Hotel.LogLimit
	opts.Cache = responses
	handler := NewHandler(s, webpushOptions, opts)

	r.GET("/api/vapid_public_key", handler.GetVAPIDPublicKey)

	api := r.Group("/api")
	api.Use(mw.Tenant(cfg.Auth.JWTSecret, cfg.Auth.TenantHeader))
	api.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	{
		api.GET("/room-types", caching, handler.GetRoomTypes)
		api.POST("/room-types", handler.CreateRoomType)

		api.GET("/rooms", handler.GetRooms)
		api.POST("/rooms", handler.CreateRoom)
		api.GET("/rooms/status", handler.GetRoomStatus)
		api.POST("/rooms/:id/state", handler.SetRoomState)

		api.POST("/bookings", handler.CreateBooking)
		api.GET("/bookings/today", handler.GetTodayCheckIns)
		api.POST("/bookings/:id/checkin", handler.CheckIn)

		api.GET("/maintenance/pending", handler.GetPendingTasks)
		api.POST("/maintenance", handler.AddTask)
		api.POST("/maintenance/:id/complete", handler.CompleteTask)

		api.GET("/service/heap", handler.GetServiceHeap)
		api.POST("/service", handler.AddServiceOrder)
		api.DELETE("/service/:id", handler.CompleteServiceOrder)

		api.GET("/lookup", handler.LookupGuest)
		api.GET("/search", handler.SearchGuests)

		api.GET("/route", handler.GetCleaningRoute)
		api.POST("/route/start-day", handler.StartDayCleaning)
		api.POST("/route/:id/clean", handler.MarkRoomCleaned)
		api.POST("/route/reset", handler.ResetAllRooms)

		api.GET("/dnd", handler.GetDND)
		api.POST("/dnd/toggle", handler.ToggleDND)

		api.GET("/notifications", handler.GetNotifications)
		api.POST("/notifications", handler.AddNotification)
		api.POST("/notifications/pop", handler.PopNotification)
		api.GET("/logs", handler.GetActionLogs)

		api.GET("/waitlist", handler.GetWaitlist)
		api.POST("/waitlist", handler.AddToWaitlist)
		api.POST("/waitlist/pop", handler.PopWaitlist)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
	}

	return r
}

// registerValidators adds the custom binding rules used by request structs.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("roomstate", func(fl validator.FieldLevel) bool {
			return store.ValidRoomState(fl.Field().String())
		})
	}
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
