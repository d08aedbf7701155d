package router

import (
	"github.com/gin-gonic/gin"
	"github.com/schedulebob/auth/internal/dto"
	"github.com/schedulebob/auth/internal/middleware"
)

// authRoutes are public; /me answers 401 itself when no identity is attached.
func (r *Router) authRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	if r.limiter != nil {
		auth.Use(middleware.RateLimit(r.limiter, r.Config.RateLimit.Window))
	}
	{
		auth.POST("/login", r.validMw.ValidateRequestBody(func() interface{} { return &dto.LoginRequest{} }), r.authHandler.Login)
		auth.POST("/refresh-token", r.authHandler.RefreshToken)
		auth.GET("/me", r.authHandler.Me)
	}
}
