package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/lumen/internal/config"
	"github.com/Nixie-Tech-LLC/lumen/internal/db"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/lumen/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Nixie-Tech-LLC/lumen/internal/http/api/admin/control/endpoints"
	tvapi "github.com/Nixie-Tech-LLC/lumen/internal/http/api/tv/endpoints"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
	},
		authapi.AuthPublicModule(cfg.JWTSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Store:     store,
	},
		adminapi.DeviceModule(store),
		adminapi.CampaignModule(store),
		adminapi.ScheduleModule(store),
		adminapi.ContentModule(store),
		authapi.AuthSessionModule(cfg.JWTSecret, store),
	)

	// pairing is public; a device has no token until it pairs
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		tvapi.PairingModule(cfg.JWTSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/tv",
		DeviceAuth: true,
		SecretKey:  cfg.JWTSecret,
	},
		tvapi.ResolutionModule(store),
	)
}
