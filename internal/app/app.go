package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Okita-Damian/video-streaming-App/internal/config"
	httpx "github.com/Okita-Damian/video-streaming-App/internal/http"
	"github.com/Okita-Damian/video-streaming-App/internal/http/handlers"
	"github.com/Okita-Damian/video-streaming-App/internal/http/middleware"
	"github.com/Okita-Damian/video-streaming-App/internal/infrastructure/auth"
	"github.com/Okita-Damian/video-streaming-App/internal/infrastructure/database"
)

// Run wires every dependency and serves until the listener fails.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}

	// Initialize handlers
	authH := handlers.NewAuthHandlers(c.AuthSvc, cfg)
	userH := handlers.NewUserHandlers(c.UserRepo)
	videoH := handlers.NewVideoHandlers(c.VideoSvc, c.StreamSvc, c.StorageSvc)

	// Initialize middleware
	jwtMW := middleware.AuthMiddleware(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(authH, userH, videoH, jwtMW, casbinMW, c.RedisClient, cfg.TrendingCacheTTL)

	seedPolicies(c.Casbin)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default role grants on an empty policy
// store. role_owner is granted only self-scoped user routes; the
// middleware falls back to it when the :id parameter names the caller.
func seedPolicies(cas *auth.CasbinService) {
	policies, _ := cas.E.GetPolicy()
	if len(policies) > 0 {
		return
	}

	cas.E.AddPolicy("role_admin", "/users", "GET")
	cas.E.AddPolicy("role_admin", "/users/:id", "(GET|PATCH|DELETE)")
	cas.E.AddPolicy("role_admin", "/videos/upload", "POST")
	cas.E.AddPolicy("role_admin", "/videos/:id", "(PUT|DELETE)")

	cas.E.AddPolicy("role_owner", "/users/:id", "(GET|PATCH)")

	for _, role := range []string{"role_user", "role_admin"} {
		cas.E.AddPolicy(role, "/users/me", "DELETE")
		cas.E.AddPolicy(role, "/videos/stream/:id", "GET")
	}

	_ = cas.E.SavePolicy()
	log.Println("casbin: seeded default policies")
}

// initRedis connects the response cache; a failed ping disables caching
// rather than blocking startup.
func initRedis(cfg *config.Config) *database.RedisClient {
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, response caching disabled: %v", err)
		return nil
	}
	return rdb
}
