package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/projectpulse/pm-backend/internal/api/http"
	"github.com/projectpulse/pm-backend/internal/api/http/middleware"
	clienthttp "github.com/projectpulse/pm-backend/internal/clients/http"
	clientrepo "github.com/projectpulse/pm-backend/internal/clients/repository"
	clientsvc "github.com/projectpulse/pm-backend/internal/clients/service"
	"github.com/projectpulse/pm-backend/internal/dashboard"
	"github.com/projectpulse/pm-backend/internal/db"
	"github.com/projectpulse/pm-backend/internal/progress"
	projecthttp "github.com/projectpulse/pm-backend/internal/projects/http"
	projectrepo "github.com/projectpulse/pm-backend/internal/projects/repository"
	projectsvc "github.com/projectpulse/pm-backend/internal/projects/service"
	taskhttp "github.com/projectpulse/pm-backend/internal/tasks/http"
	taskrepo "github.com/projectpulse/pm-backend/internal/tasks/repository"
	tasksvc "github.com/projectpulse/pm-backend/internal/tasks/service"
	teamhttp "github.com/projectpulse/pm-backend/internal/team/http"
	memberrepo "github.com/projectpulse/pm-backend/internal/team/repository"
	teamsvc "github.com/projectpulse/pm-backend/internal/team/service"
	todohttp "github.com/projectpulse/pm-backend/internal/todos/http"
	todorepo "github.com/projectpulse/pm-backend/internal/todos/repository"
	todosvc "github.com/projectpulse/pm-backend/internal/todos/service"
)

// storeTimeout is the generous upper bound on the store round-trips of a
// single request; beyond it the caller gets a retryable failure.
const storeTimeout = 30 * time.Second

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *db.DB
	Redis       *redis.Client
}

// BuildRouter wires repositories, services, and handlers explicitly: every
// handler gets its dependencies by reference, no process-wide registry.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB.Pool)
	healthHandler.RegisterRoutes(r)

	clientRepo := clientrepo.New(dep.DB.SQL)
	memberRepo := memberrepo.New(dep.DB.SQL)
	projectRepo := projectrepo.New(dep.DB.SQL)
	taskRepo := taskrepo.New(dep.DB.SQL)
	todoRepo := todorepo.New(dep.DB.SQL)
	calc := progress.NewCalculator(dep.DB.SQL)

	clientService := clientsvc.New(clientRepo, projectRepo)
	memberService := teamsvc.New(memberRepo, taskRepo)
	projectService := projectsvc.New(projectRepo, clientRepo, taskRepo, calc)
	taskService := tasksvc.New(taskRepo, projectRepo, memberRepo, todoRepo, calc)
	todoService := todosvc.New(todoRepo, taskRepo, calc)
	dashboardService := dashboard.NewService(dep.DB.SQL, dep.Redis)

	api := r.Group("/api/v1")
	api.Use(middleware.Timeout(storeTimeout))

	clienthttp.New(clientService).Register(api.Group("/clients"))
	teamhttp.New(memberService).Register(api.Group("/team-members"))
	projecthttp.New(projectService).Register(api.Group("/projects"))
	taskhttp.New(taskService).Register(api.Group("/tasks"))
	todohttp.New(todoService).Register(api.Group("/todos"))
	dashboard.NewHandler(dashboardService).Register(api.Group("/dashboard"))

	return r
}
