// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Init swagger doc
	_ "actualize-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"actualize-backend/internal/auth"
	"actualize-backend/internal/controller/admin"
	"actualize-backend/internal/controller/application"
	"actualize-backend/internal/controller/file"
	"actualize-backend/internal/middleware"
	"actualize-backend/internal/model"
	"actualize-backend/internal/progression"
	"actualize-backend/internal/repository"
	"actualize-backend/internal/upload"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	engine := progression.NewEngine(repository.NewStore(s.DB))
	processes := repository.NewProcessRepository(s.DB)
	applications := repository.NewApplicationRepository(s.DB)
	gate := auth.NewGate(engine, processes, s.Config.AutoUnblockOnExpiry)

	lAuth := auth.NewLocalAuthHandler(s.DB, s.JWT, gate)
	logout := auth.NewLogoutController(s.Blacklist)
	applicationController := application.NewApplicationController(
		engine, processes, applications,
		upload.NewCoordinator(s.Storage, s.Config.UploadTimeout),
	)
	adminController := admin.NewAdminController(engine, processes, applications)
	fileController := file.NewFileController(s.Files)

	loginLimiter := middleware.LoginRateLimit(
		middleware.NewRedisLimiter(s.Redis), s.Config.LoginRateLimit, s.Config.LoginRateWindow,
	)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	timeout := middleware.RequestTimeout(s.Config.RequestTimeout)
	candidateOnly := []gin.HandlerFunc{middleware.CheckRole(model.RoleCandidate), middleware.CheckBlocked(s.DB, gate)}

	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth", timeout)
		{
			authRoute.POST("candidate/register", loginLimiter, lAuth.CandidateRegisterHandler)
			authRoute.POST("candidate/login", loginLimiter, lAuth.CandidateLoginHandler)
			authRoute.POST("admin/login", loginLimiter, lAuth.AdminLoginHandler)
			authRoute.POST("logout", middleware.RequireAuth(s.JWT), logout.LogoutHandler)
		}

		// Any routes
		needAuth := v1.Group("")
		{
			needAuth.Use(
				middleware.JwtBlacklistCheck(s.Blacklist),
				middleware.RequireAuth(s.JWT),
				middleware.RateLimiterMiddleware(uint(s.Config.RateLimitRPS)),
			)
			needAuth.GET("files/:id", timeout, fileController.GetFile)

			needCandidate := needAuth.Group("", append([]gin.HandlerFunc{timeout}, candidateOnly...)...)
			{
				needCandidate.GET("processes/:id", applicationController.GetProcess)
				needCandidate.POST("applications", applicationController.StartApplication)
				needCandidate.GET("applications/:appId", applicationController.GetApplication)
				needCandidate.GET("candidate/community-group", applicationController.GetCommunityGroup)
				needCandidate.PATCH("applications/:appId/round/:roundId", applicationController.AutosaveRound)
				needCandidate.PUT("applications/:appId/round/:roundId/timeline", applicationController.SetTimeline)
			}

			// Submissions get the upload budget on top of the request timeout
			submitRoute := needAuth.Group("", append([]gin.HandlerFunc{
				middleware.RequestTimeout(s.Config.SubmitTimeout()),
				middleware.SizeLimit(s.Config.MaxUploadBytes),
			}, candidateOnly...)...)
			{
				submitRoute.POST("applications/:appId/round/:roundId", applicationController.SubmitRound)
			}

			needAdmin := needAuth.Group("/admin", timeout, middleware.CheckRole(model.RoleAdmin))
			{
				needAdmin.GET("applications/:appId", adminController.GetApplication)
				needAdmin.PATCH("applications/:appId", adminController.UpdateApplication)
				needAdmin.DELETE("applications/:appId", adminController.ArchiveApplication)
				needAdmin.GET("processes/:id/applications", adminController.ListApplications)
				needAdmin.POST("processes/:id/clone", adminController.CloneProcess)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
