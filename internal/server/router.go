package server

import (
	"net/http"

	"fyp-portal/internal/config"
	"fyp-portal/internal/database"
	"fyp-portal/internal/handlers"
	"fyp-portal/internal/middleware"
	"fyp-portal/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*.html")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("fyp_session", store))

	r.Use(middleware.InjectUser())

	handlers.Setup(database.DB)

	// AUTH
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)
	r.GET("/logout", handlers.Logout)
	r.GET("/register", handlers.ShowRegister)
	r.POST("/register", handlers.Register)
	r.GET("/unauthorised", handlers.Unauthorised)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/", handlers.Home)

	// STUDENT PAGES
	auth.GET("/student_home",
		middleware.RequireRole(models.RoleStudent),
		handlers.StudentHome,
	)
	auth.GET("/proposed-projects",
		middleware.RequireRole(models.RoleStudent),
		handlers.ProposedProjects,
	)
	auth.GET("/propose-project",
		middleware.RequireRole(models.RoleStudent),
		handlers.ShowProposeProject,
	)
	auth.POST("/propose-project",
		middleware.RequireRole(models.RoleStudent),
		handlers.ProposeProject,
	)
	auth.POST("/request-project/:id",
		middleware.RequireRole(models.RoleStudent),
		handlers.RequestProject,
	)

	// SUPERVISOR PAGES
	auth.GET("/supervisor_home",
		middleware.RequireRole(models.RoleSupervisor),
		handlers.SupervisorHome,
	)
	auth.GET("/register-topic",
		middleware.RequireRole(models.RoleSupervisor),
		handlers.ShowRegisterTopic,
	)
	auth.POST("/register-topic",
		middleware.RequireRole(models.RoleSupervisor),
		handlers.RegisterTopic,
	)
	auth.GET("/register-proposal",
		middleware.RequireRole(models.RoleSupervisor),
		handlers.ShowRegisterProposal,
	)
	auth.POST("/register-proposal",
		middleware.RequireRole(models.RoleSupervisor),
		handlers.RegisterProposal,
	)
	auth.GET("/manage-proposals",
		middleware.RequireRole(models.RoleSupervisor),
		handlers.ManageProposals,
	)
	auth.POST("/manage-proposals",
		middleware.RequireRole(models.RoleSupervisor),
		handlers.ManageProposalsAction,
	)
	auth.GET("/accepted-projects",
		middleware.RequireRole(models.RoleSupervisor),
		handlers.AcceptedProjects,
	)

	// ADMIN
	auth.GET("/admin/report",
		middleware.RequireRole(models.RoleAdmin),
		handlers.AdminReport,
	)

	// READ API
	r.GET("/project/:supervisorid", handlers.ProjectList)
	r.GET("/supervisor/:studentid", handlers.SupervisorList)
	r.GET("/student/:supervisorid", handlers.StudentList)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
