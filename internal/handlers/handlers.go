package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mercadoscout/internal/auth"
	"mercadoscout/internal/favorites"
	"mercadoscout/internal/middleware"
	"mercadoscout/internal/models"
	"mercadoscout/logger"
	"mercadoscout/pkg/apierr"
)

// ProductSearcher produces product records for a search query
type ProductSearcher interface {
	Search(query string) ([]models.Product, error)
}

// DealRanker ranks a product batch via the completion service
type DealRanker interface {
	RankBest(ctx context.Context, products []models.Product) (*models.Analysis, error)
}

// Handler carries the wired services for the HTTP surface
type Handler struct {
	searcher  ProductSearcher
	ranker    DealRanker
	auth      *auth.Service
	favorites *favorites.Service
	log       *logger.Logger
}

// New creates a handler set
func New(searcher ProductSearcher, ranker DealRanker, authSvc *auth.Service, favSvc *favorites.Service) *Handler {
	return &Handler{
		searcher:  searcher,
		ranker:    ranker,
		auth:      authSvc,
		favorites: favSvc,
		log:       logger.ForServer(),
	}
}

// Search handles GET /search?q=<term>
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	products, err := h.searcher.Search(query)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// AnalyzeProducts handles POST /analyze-products
func (h *Handler) AnalyzeProducts(c *gin.Context) {
	var products []models.Product
	if err := c.ShouldBindJSON(&products); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be an array of products"})
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one product is required"})
		return
	}

	analysis, err := h.ranker.RankBest(c.Request.Context(), products)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// Register handles POST /register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	creds, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "account created",
		"token":   creds.Token,
		"uid":     creds.UserID,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	creds, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   creds.Token,
		"uid":     creds.UserID,
	})
}

// AddFavorite handles POST /favorites/add
func (h *Handler) AddFavorite(c *gin.Context) {
	var fav models.FavoriteProduct
	if err := c.ShouldBindJSON(&fav); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a product"})
		return
	}

	if err := h.favorites.Add(c.Request.Context(), c.GetString(middleware.ContextUserIDKey), fav); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite saved"})
}

// ListFavorites handles GET /favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	favs, err := h.favorites.List(c.Request.Context(), c.GetString(middleware.ContextUserIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

type removeFavoriteRequest struct {
	ID string `json:"id" binding:"required"`
}

// RemoveFavorite handles DELETE /favorites/remove
func (h *Handler) RemoveFavorite(c *gin.Context) {
	var req removeFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), c.GetString(middleware.ContextUserIDKey), req.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}

// respondError converts classified errors to their status code; anything
// unclassified becomes a 500
func (h *Handler) respondError(c *gin.Context, err error) {
	var e *apierr.Error
	if errors.As(err, &e) {
		h.log.WithError(err).Debug().Msg("request failed")
		c.JSON(e.HTTPStatus(), gin.H{"error": e.Message})
		return
	}
	h.log.WithError(err).Error().Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
