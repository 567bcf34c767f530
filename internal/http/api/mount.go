package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/http/middleware"
)

// Module registers one feature area's routes on a Controller.
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc adapts a plain registration function to Module.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// GroupConfig describes the route group modules are mounted on.
type GroupConfig struct {
	Prefix     string
	Auth       bool                  // guard every route with a bearer token
	SecretKey  string                // token signing key, needed with Auth
	Users      middleware.UserLookup // resolves the token subject, needed with Auth
	Middleware []gin.HandlerFunc     // run ahead of the auth check
}

// MountGroup opens a group at cfg.Prefix on parent and lets each module
// register its routes there. A group asking for auth without a key or user
// lookup is a wiring mistake and stops the process.
func MountGroup(parent gin.IRouter, cfg GroupConfig, modules ...Module) {
	handlers := append([]gin.HandlerFunc{}, cfg.Middleware...)
	if cfg.Auth {
		if cfg.SecretKey == "" || cfg.Users == nil {
			log.Fatal().Str("prefix", cfg.Prefix).Msg("authenticated route group is missing its secret or user lookup")
		}
		handlers = append(handlers, middleware.JWTMiddleware(cfg.SecretKey, cfg.Users))
	}

	c := &Controller{Group: parent.Group(cfg.Prefix, handlers...)}
	for _, m := range modules {
		m.Mount(c)
	}
	log.Debug().Str("prefix", cfg.Prefix).Bool("auth", cfg.Auth).Int("modules", len(modules)).Msg("mounted route group")
}
