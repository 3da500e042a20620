package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"
)

// ExtractAsset turns free text into a validated asset draft via the AI
// collaborator. A draft the model could not produce comes back as 422 so
// the UI can ask the user to rephrase.
func (s *Server) ExtractAsset(c *gin.Context) {
	if s.Assistant == nil {
		c.JSON(nethttp.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := s.Assistant.ExtractAsset(c.Request.Context(), req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	if draft == nil {
		c.JSON(nethttp.StatusUnprocessableEntity, gin.H{"error": "could not extract an asset from the text"})
		return
	}

	asset, err := draft.ToAsset(userID(c))
	if err != nil {
		c.JSON(nethttp.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(nethttp.StatusOK, toAssetResponse(asset))
}

// AskAssistant answers a question about the user's portfolio
func (s *Server) AskAssistant(c *gin.Context) {
	if s.Assistant == nil {
		c.JSON(nethttp.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := s.Portfolio.Overview(c.Request.Context(), userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	answer, err := s.Assistant.Explain(c.Request.Context(), req.Question, snapshot)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"answer": answer})
}

// Insights generates advisory items for the user's goals
func (s *Server) Insights(c *gin.Context) {
	if s.Assistant == nil {
		c.JSON(nethttp.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)

	assets, err := s.AssetRepo.ListByUser(ctx, uid)
	if err != nil {
		s.fail(c, err)
		return
	}

	goals, err := s.GoalRepo.ListByUser(ctx, uid)
	if err != nil {
		s.fail(c, err)
		return
	}

	report, err := s.Assistant.Insights(ctx, assets, goals)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, report)
}
