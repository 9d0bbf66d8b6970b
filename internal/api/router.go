package api

import (
	"github.com/auklet-oj/auklet/internal/config"
	"github.com/auklet-oj/auklet/internal/pubsub"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter creates and configures the Gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, broker *pubsub.Broker) *gin.Engine {
	r := gin.Default()

	r.Use(CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db, broker)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.login)

		// Websocket stream of a contest's submission status updates
		v1.GET("/ws/contests/:id/status", h.handleContestStatusWs)

		// Publicly accessible info; admins with a token see more.
		public := v1.Group("/")
		public.Use(OptionalAuthMiddleware(cfg.Auth.JWT.Secret))
		{
			public.GET("/contests", h.listContests)
			public.GET("/contests/:id", h.getContest)
			public.GET("/contests/:id/rankings", h.getRankings)
			public.GET("/contests/:id/problems", h.listProblems)
			public.GET("/contests/:id/problems/:pid", h.getProblem)
			public.GET("/environments", h.listEnvironments)
			public.GET("/users/:id", h.getUser)
		}

		// Authenticated routes
		authed := v1.Group("/")
		authed.Use(AuthMiddleware(cfg.Auth.JWT.Secret))
		{
			authed.PATCH("/users/:id", h.updateUser)

			authed.POST("/contests/:id/problems/:pid/submissions", h.createSubmission)
			authed.GET("/contests/:id/submissions", h.listSubmissions)
			authed.GET("/submissions/:id", h.getSubmission)

			// Admin-only routes
			admin := authed.Group("/")
			admin.Use(AdminMiddleware())
			{
				admin.POST("/users", h.registerUser)

				admin.POST("/contests", h.createContest)
				admin.PATCH("/contests/:id", h.updateContest)

				admin.POST("/contests/:id/problems", h.createProblem)
				admin.PATCH("/contests/:id/problems/:pid", h.updateProblem)
				admin.DELETE("/contests/:id/problems/:pid", h.deleteProblem)

				admin.POST("/environments", h.createEnvironment)
				admin.PATCH("/environments/:id", h.updateEnvironment)

				// Judge worker write-back and rejudge trigger
				admin.PATCH("/submissions/:id/status", h.updateSubmissionStatus)
				admin.POST("/contests/:id/problems/:pid/rejudge", h.rejudge)
			}
		}
	}

	return r
}
