// Package router registers the HTTP routes and wires middleware onto them.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/loan-ledger/internal/auth"
	"github.com/iliyamo/loan-ledger/internal/config"
	"github.com/iliyamo/loan-ledger/internal/handler"
	"github.com/iliyamo/loan-ledger/internal/middleware"
)

// Register sets up all routes. Login is public but rate limited; every
// loan route sits behind the access gate. Balance and loan reads get the
// short-lived response cache. rdb may be nil, which disables rate limiting
// and caching.
func Register(e *echo.Echo, a *handler.AuthHandler, l *handler.LoanHandler, gate *auth.Gate, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	pub := e.Group("/v1/auth")
	pub.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	pub.POST("/login", a.Login)

	v1 := e.Group("/v1")
	v1.Use(middleware.BearerAuth(gate))
	v1.POST("/loans", l.Create)
	v1.GET("/loans/:id", l.Get, cache)
	v1.POST("/loans/:id/payments", l.CreatePayment)
	v1.GET("/loans/:id/payments", l.ListPayments)
	v1.GET("/loans/:id/balance", l.Balance, cache)
}
