package http

import (
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListAssets returns every asset owned by the acting user
func (s *Server) ListAssets(c *gin.Context) {
	assets, err := s.AssetRepo.ListByUser(c.Request.Context(), userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetResponse(a))
	}

	c.JSON(nethttp.StatusOK, gin.H{"assets": out})
}

// CreateAsset validates and stores a new asset
func (s *Server) CreateAsset(c *gin.Context) {
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset := req.toDomain(uuid.New(), userID(c))
	if err := asset.Validate(); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.AssetRepo.Create(c.Request.Context(), asset); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusCreated, toAssetResponse(asset))
}

// GetAsset returns one asset by ID
func (s *Server) GetAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	asset, err := s.AssetRepo.GetByID(c.Request.Context(), userID(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, toAssetResponse(asset))
}

// UpdateAsset validates and replaces an existing asset
func (s *Server) UpdateAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset := req.toDomain(id, userID(c))
	if err := asset.Validate(); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.AssetRepo.Update(c.Request.Context(), asset); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, toAssetResponse(asset))
}

// DeleteAsset removes an asset
func (s *Server) DeleteAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return
	}

	if err := s.AssetRepo.Delete(c.Request.Context(), userID(c), id); err != nil {
		s.fail(c, err)
		return
	}

	c.Status(nethttp.StatusNoContent)
}

// fail maps repository errors onto HTTP status codes
func (s *Server) fail(c *gin.Context, err error) {
	s.log.WithError(err).Error("request failed")

	if strings.Contains(err.Error(), "not found") {
		c.JSON(nethttp.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(nethttp.StatusInternalServerError, gin.H{"error": "internal error"})
}
