package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hejazi/internal/config"
	"hejazi/internal/domain"
	"hejazi/internal/handler"
	"hejazi/internal/middleware"
	"hejazi/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Tenant      *handler.TenantHandler
	User        *handler.UserHandler
	Profile     *handler.ProfileHandler
	Job         *handler.JobHandler
	Taxonomy    *handler.TaxonomyHandler
	Permission  *handler.PermissionHandler
	Company     *handler.CompanyHandler
	Question    *handler.QuestionHandler
	Evaluation  *handler.EvaluationHandler
	Violation   *handler.ViolationHandler
	Location    *handler.LocationHandler
	Inspection  *handler.InspectionHandler
	Risk        *handler.RiskHandler
	AppSecurity *handler.AppSecurityHandler
	Stats       *handler.StatsHandler
}

// Guards are the services the access middleware consults.
type Guards struct {
	Auth        service.AuthService
	Permissions service.PermissionService
	AppSecurity service.AppSecurityService
}

// Options controls environment-dependent parts of the router.
type Options struct {
	AllowedOrigins []string
	Gates          config.GatesConfig
	EnableSwagger  bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(opts Options, guards Guards, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/provider", h.Auth.ProviderLogin)

	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	gate := func(code string) gin.HandlerFunc {
		return middleware.RequireService(guards.Permissions, code)
	}

	// The kill switch routes sit outside AppGate so a locked tenant can be unlocked.
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(guards.Auth), adminOnly)
	admin.GET("/app-security", h.AppSecurity.Get)
	admin.PUT("/app-security", h.AppSecurity.Set)

	tenants := admin.Group("/tenants", middleware.RequirePlatformAdmin())
	tenants.POST("", h.Tenant.Create)
	tenants.GET("", h.Tenant.List)
	tenants.GET("/:id", h.Tenant.GetByID)
	tenants.PUT("/:id", h.Tenant.Update)
	tenants.DELETE("/:id", h.Tenant.Delete)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(guards.Auth), middleware.AppGate(guards.AppSecurity))

	protected.GET("/stats", h.Stats.GetStats)

	me := protected.Group("/me")
	me.GET("", h.Profile.Get)
	me.PUT("", h.Profile.Update)
	me.POST("/avatar", h.Profile.UploadAvatar)
	me.POST("/signature", h.Profile.UploadSignature)
	me.GET("/media", h.Profile.Media)
	me.PUT("/favorites", h.Profile.SetFavorites)
	me.GET("/permissions", h.Permission.MyPermissions)
	me.GET("/menu", h.Permission.MyMenu)

	users := protected.Group("/users")
	users.POST("", adminOnly, h.User.Create)
	users.GET("", adminOnly, h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", adminOnly, h.User.Delete)
	users.GET("/:id/permissions", h.Permission.UserEffective)
	users.GET("/:id/permission-exceptions", adminOnly, h.Permission.GetUserExceptions)
	users.PUT("/:id/permission-exceptions", adminOnly, h.Permission.SaveUserExceptions)
	users.POST("/:id/permission-exceptions", adminOnly, h.Permission.UpsertUserException)
	users.DELETE("/:id/permission-exceptions/:level/:resource_id", adminOnly, h.Permission.DeleteUserException)

	jobs := protected.Group("/jobs")
	jobs.GET("", h.Job.List)
	jobs.GET("/:id", h.Job.GetByID)
	jobs.POST("", adminOnly, h.Job.Create)
	jobs.PUT("/:id", adminOnly, h.Job.Update)
	jobs.DELETE("/:id", adminOnly, h.Job.Delete)
	jobs.GET("/:id/permissions", adminOnly, h.Permission.GetJobPermissions)
	jobs.PUT("/:id/permissions", adminOnly, h.Permission.SaveJobPermissions)

	protected.GET("/services/tree", h.Taxonomy.Tree)
	protected.GET("/services/:id/sub-services", h.Taxonomy.ListSubServices)
	protected.GET("/sub-services/:id/sub-sub-services", h.Taxonomy.ListSubSubServices)
	taxonomy := protected.Group("/taxonomy", adminOnly)
	taxonomy.POST("", h.Taxonomy.Create)
	taxonomy.PUT("/:level/:id", h.Taxonomy.Update)
	taxonomy.DELETE("/:level/:id", h.Taxonomy.Delete)

	evalGate := gate(opts.Gates.Evaluations)
	companies := protected.Group("/companies", evalGate)
	companies.GET("", h.Company.List)
	companies.GET("/:id", h.Company.GetByID)
	companies.POST("", adminOnly, h.Company.Create)
	companies.PUT("/:id", adminOnly, h.Company.Update)
	companies.DELETE("/:id", adminOnly, h.Company.Delete)
	companies.POST("/:id/recompute-score", adminOnly, h.Company.RecomputeScore)

	questions := protected.Group("/questions", evalGate)
	questions.GET("", h.Question.List)
	questions.POST("", adminOnly, h.Question.Create)
	questions.PUT("/:id", adminOnly, h.Question.Update)
	questions.DELETE("/:id", adminOnly, h.Question.Deactivate)

	evaluations := protected.Group("/evaluations", evalGate)
	evaluations.POST("", h.Evaluation.Create)
	evaluations.GET("", h.Evaluation.List)
	evaluations.GET("/export", h.Evaluation.Export)
	evaluations.GET("/:id", h.Evaluation.GetByID)
	evaluations.PUT("/:id", h.Evaluation.UpdateDetails)
	evaluations.POST("/:id/decision", adminOnly, h.Evaluation.Decide)
	evaluations.DELETE("/:id", adminOnly, h.Evaluation.Delete)

	violations := protected.Group("/violations", gate(opts.Gates.Violations))
	violations.POST("", h.Violation.Create)
	violations.GET("", h.Violation.List)
	violations.GET("/export", h.Violation.Export)
	violations.GET("/:id", h.Violation.GetByID)
	violations.POST("/:id/close", h.Violation.Close)
	violations.GET("/:id/mailto", h.Violation.Mailto)
	violations.POST("/:id/notify", h.Violation.Notify)
	violations.GET("/:id/sends", h.Violation.ListSends)

	protected.GET("/sectors", h.Location.ListSectors)
	protected.GET("/buildings", h.Location.ListBuildings)
	protected.GET("/buildings/:id/subbuildings", h.Location.ListSubbuildings)
	protected.GET("/distribution/me", h.Location.ListMine)
	locations := protected.Group("", adminOnly)
	locations.POST("/sectors", h.Location.CreateSector)
	locations.DELETE("/sectors/:id", h.Location.DeleteSector)
	locations.POST("/buildings", h.Location.CreateBuilding)
	locations.DELETE("/buildings/:id", h.Location.DeleteBuilding)
	locations.POST("/subbuildings", h.Location.CreateSubbuilding)
	locations.DELETE("/subbuildings/:id", h.Location.DeleteSubbuilding)
	locations.POST("/distribution", h.Location.Assign)
	locations.GET("/distribution", h.Location.ListAssignments)
	locations.DELETE("/distribution/:id", h.Location.Unassign)

	inspections := protected.Group("/inspections", gate(opts.Gates.Inspections))
	inspections.POST("", h.Inspection.Create)
	inspections.GET("", h.Inspection.List)
	inspections.GET("/:id", h.Inspection.GetByID)

	riskGate := gate(opts.Gates.Risks)
	risks := protected.Group("/risks", riskGate)
	risks.POST("", h.Risk.CreateRisk)
	risks.GET("", h.Risk.ListRisks)
	risks.GET("/:id", h.Risk.GetRisk)
	risks.PUT("/:id/status", h.Risk.UpdateRiskStatus)

	maintenance := protected.Group("/maintenance", riskGate)
	maintenance.POST("", h.Risk.CreateMaintenance)
	maintenance.GET("", h.Risk.ListMaintenance)
	maintenance.POST("/:id/complete", h.Risk.CompleteMaintenance)

	return r
}
