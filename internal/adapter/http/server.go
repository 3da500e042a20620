// Package http exposes the backend over a gin REST API. It is a thin
// adapter: handlers decode payloads into domain shapes, call the use
// cases, and encode the derived values back out.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/finanza-app/finanza-backend/internal/adapter/assistant"
	"github.com/finanza-app/finanza-backend/internal/domain"
	"github.com/finanza-app/finanza-backend/internal/usecase/goals"
	"github.com/finanza-app/finanza-backend/internal/usecase/portfolio"
	"github.com/finanza-app/finanza-backend/pkg/logger"
)

// Server bundles the services the HTTP layer fronts
type Server struct {
	AssetRepo      domain.AssetRepository
	GoalRepo       domain.GoalRepository
	AllocationRepo domain.AllocationGoalsRepository
	Portfolio      *portfolio.Service
	Goals          *goals.Service
	// Assistant is nil when no Gemini API key is configured; the
	// assistant endpoints answer 503 in that case.
	Assistant *assistant.Service

	log      *logger.Logger
	apiToken string
	origins  []string
}

// NewServer creates a new HTTP server instance
func NewServer(
	assetRepo domain.AssetRepository,
	goalRepo domain.GoalRepository,
	allocationRepo domain.AllocationGoalsRepository,
	portfolioService *portfolio.Service,
	goalsService *goals.Service,
	assistantService *assistant.Service,
	log *logger.Logger,
	apiToken string,
	allowedOrigins []string,
) *Server {
	return &Server{
		AssetRepo:      assetRepo,
		GoalRepo:       goalRepo,
		AllocationRepo: allocationRepo,
		Portfolio:      portfolioService,
		Goals:          goalsService,
		Assistant:      assistantService,
		log:            log,
		apiToken:       apiToken,
		origins:        allowedOrigins,
	}
}

// Router builds the gin engine with all routes and middleware attached
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(s.log))
	router.Use(CORS(s.origins))

	router.GET("/health", s.Health)

	v1 := router.Group("/api/v1")
	v1.Use(AuthRequired(s.apiToken))
	v1.Use(UserScope())
	{
		v1.GET("/dashboard", s.Dashboard)
		v1.GET("/reports", s.Report)
		v1.POST("/simulations", s.Simulate)

		v1.GET("/assets", s.ListAssets)
		v1.POST("/assets", s.CreateAsset)
		v1.GET("/assets/:id", s.GetAsset)
		v1.PUT("/assets/:id", s.UpdateAsset)
		v1.DELETE("/assets/:id", s.DeleteAsset)

		v1.GET("/goals", s.ListGoals)
		v1.POST("/goals", s.CreateGoal)
		v1.PUT("/goals/:id", s.UpdateGoal)
		v1.DELETE("/goals/:id", s.DeleteGoal)

		v1.GET("/allocation-goals", s.GetAllocationGoals)
		v1.PUT("/allocation-goals", s.UpdateAllocationGoals)
		v1.GET("/allocation-drift", s.AllocationDrift)

		v1.POST("/assistant/extract", s.ExtractAsset)
		v1.POST("/assistant/ask", s.AskAssistant)
		v1.POST("/assistant/insights", s.Insights)
	}

	return router
}

// Health reports liveness
func (s *Server) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
