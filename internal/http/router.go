package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Okita-Damian/video-streaming-App/internal/http/handlers"
	"github.com/Okita-Damian/video-streaming-App/internal/http/middleware"
)

// BuildRouter wires every route behind the error translator; handlers
// record failures with c.Error and never write error bodies themselves.
func BuildRouter(
	ah *handlers.AuthHandlers,
	uh *handlers.UserHandlers,
	vh *handlers.VideoHandlers,
	authMW gin.HandlerFunc,
	cb *middleware.CasbinMW,
	cache *redis.Client,
	trendingTTL time.Duration,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.ErrorHandler())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/signup", ah.Signup)
	auth.POST("/login", ah.Login)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.POST("/resend-otp", ah.ResendOTP)
	auth.POST("/refresh-token", ah.Refresh)
	auth.POST("/logout", ah.Logout)
	auth.POST("/request-password-reset", ah.RequestPasswordReset)
	auth.POST("/reset-password", ah.ResetPassword)

	users := r.Group("/users")
	users.Use(authMW, cb.Enforce())
	users.GET("", uh.List)
	users.DELETE("/me", uh.DeleteMe)
	users.GET("/:id", uh.Get)
	users.PATCH("/:id", uh.Update)
	users.DELETE("/:id", uh.Delete)

	// Browse routes are public; they are registered before the group
	// middleware so anonymous reads never hit the token check.
	videos := r.Group("/videos")
	videos.GET("", vh.List)
	videos.GET("/trending", middleware.ResponseCache(cache, trendingTTL), vh.Trending)
	videos.GET("/search", vh.Search)
	videos.GET("/:id", vh.Get)

	videos.Use(authMW, cb.Enforce())
	videos.POST("/upload", vh.Upload)
	videos.PUT("/:id", vh.Update)
	videos.DELETE("/:id", vh.Delete)
	videos.GET("/stream/:id", vh.Stream)

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, http.StatusNotFound, fmt.Sprintf("cannot find %s on this server", c.Request.URL.Path))
	})

	return r
}
