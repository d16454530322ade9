package routes

import (
	"github.com/gin-gonic/gin"

	"mercadoscout/internal/handlers"
	"mercadoscout/internal/middleware"
)

// RegisterRoutes wires the HTTP surface onto the router
func RegisterRoutes(router *gin.Engine, h *handlers.Handler, tokens middleware.TokenVerifier) {
	router.GET("/search", h.Search)
	router.POST("/analyze-products", h.AnalyzeProducts)
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)

	authed := router.Group("/", middleware.RequireAuth(tokens))
	{
		authed.POST("/favorites/add", h.AddFavorite)
		authed.GET("/favorites", h.ListFavorites)
		authed.DELETE("/favorites/remove", h.RemoveFavorite)
	}
}
