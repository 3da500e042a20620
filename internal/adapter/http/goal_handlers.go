package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finanza-app/finanza-backend/internal/domain"
)

// ListGoals returns the user's goals with derived progress attached
func (s *Server) ListGoals(c *gin.Context) {
	statuses, err := s.Goals.List(c.Request.Context(), userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]goalResponse, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, toGoalResponse(st.Goal, st.Progress))
	}

	c.JSON(nethttp.StatusOK, gin.H{"goals": out})
}

// CreateGoal validates and stores a new financial goal
func (s *Server) CreateGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := req.toDomain(uuid.New(), userID(c))
	if err := goal.Validate(); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.GoalRepo.Create(c.Request.Context(), goal); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusCreated, toGoalResponse(goal, 0))
}

// UpdateGoal validates and replaces an existing goal
func (s *Server) UpdateGoal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := req.toDomain(id, userID(c))
	if err := goal.Validate(); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.GoalRepo.Update(c.Request.Context(), goal); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, toGoalResponse(goal, 0))
}

// DeleteGoal removes a goal
func (s *Server) DeleteGoal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	if err := s.GoalRepo.Delete(c.Request.Context(), userID(c), id); err != nil {
		s.fail(c, err)
		return
	}

	c.Status(nethttp.StatusNoContent)
}

// GetAllocationGoals returns the user's allocation targets
func (s *Server) GetAllocationGoals(c *gin.Context) {
	goals, err := s.AllocationRepo.Get(c.Request.Context(), userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{
		"fixed_income":    goals.FixedIncome,
		"variable_income": goals.VariableIncome,
		"crypto":          goals.Crypto,
	})
}

// UpdateAllocationGoals stores new allocation targets
func (s *Server) UpdateAllocationGoals(c *gin.Context) {
	var req allocationGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goals := &domain.AllocationGoals{
		UserID:         userID(c),
		FixedIncome:    req.FixedIncome,
		VariableIncome: req.VariableIncome,
		Crypto:         req.Crypto,
	}
	if err := goals.Validate(); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.AllocationRepo.Upsert(c.Request.Context(), goals); err != nil {
		s.fail(c, err)
		return
	}

	c.Status(nethttp.StatusNoContent)
}

// AllocationDrift compares actual allocation against the targets
func (s *Server) AllocationDrift(c *gin.Context) {
	drifts, err := s.Goals.Drift(c.Request.Context(), userID(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"drift": drifts})
}
