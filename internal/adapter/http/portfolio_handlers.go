package http

import (
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finanza-app/finanza-backend/internal/usecase/simulator"
)

// Dashboard returns the aggregated portfolio metrics for the acting user
func (s *Server) Dashboard(c *gin.Context) {
	metrics, err := s.Portfolio.Overview(c.Request.Context(), userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, metrics)
}

// Report returns the same aggregated metrics stamped with the generation
// instant; the report views render the breakdowns and per-asset rows.
func (s *Server) Report(c *gin.Context) {
	metrics, err := s.Portfolio.Overview(c.Request.Context(), userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{
		"generated_at": s.Portfolio.Now().Format(time.RFC3339),
		"metrics":      metrics,
	})
}

// Simulate runs the contribution what-if projection
func (s *Server) Simulate(c *gin.Context) {
	var input simulator.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(nethttp.StatusOK, simulator.Simulate(input))
}
