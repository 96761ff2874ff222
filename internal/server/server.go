package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"taskhub/internal/domain/models"
	"taskhub/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type Repository interface {
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(id string, user *models.User) error
}

type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)
	GetTasks(ctx context.Context) ([]models.Task, error)
	GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)
	UpdateTask(ctx context.Context, id string, task *models.Task) error
	DeleteTask(ctx context.Context, id string) error
}

type TaskAPI struct {
	httpSrv *http.Server
	cfg     *Config
	users   Repository
	tasks   TaskRepository
	mailer  notify.Mailer
	cache   *redis.Client
}

// NewTaskAPI собирает HTTP-слой. mailer и cache могут быть nil: уведомления
// тогда не отправляются, а отчёт рендерится на каждый запрос.
func NewTaskAPI(cfg *Config, users Repository, tasks TaskRepository, mailer notify.Mailer, cache *redis.Client) *TaskAPI {
	if cfg == nil || users == nil || tasks == nil {
		return nil
	}

	httpSrv := http.Server{
		Addr: cfg.Addr + ":" + strconv.Itoa(cfg.Port),
	}

	api := TaskAPI{
		httpSrv: &httpSrv,
		cfg:     cfg,
		users:   users,
		tasks:   tasks,
		mailer:  mailer,
		cache:   cache,
	}

	api.configRoutes()

	return &api
}

func (api *TaskAPI) Start() error {
	return api.httpSrv.ListenAndServe()
}

func (api *TaskAPI) Shutdown(ctx context.Context) error {
	return api.httpSrv.Shutdown(ctx)
}

func (api *TaskAPI) configRoutes() {
	router := gin.Default()

	router.Use(CORSMiddleware())
	router.Use(GzipRequestDecompress())
	router.Use(GzipResponseCompress())

	router.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "использован некорректный HTTP-метод"})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", api.register)
		auth.POST("/login", api.login)

		profile := auth.Group("/profile", AuthRequired(api.cfg.JWTSecret))
		{
			profile.GET("", api.getProfile)
			profile.PUT("", api.updateProfile)
		}
	}

	tasks := router.Group("/api/tasks")
	// Гейт на маршрутах задач включается конфигурацией, по умолчанию выключен.
	if api.cfg.AuthTasks {
		tasks.Use(AuthRequired(api.cfg.JWTSecret))
	}
	{
		tasks.POST("", api.createTask)
		tasks.GET("", api.getTasks)
		tasks.PUT(":taskID", api.updateTask)
		tasks.DELETE(":taskID", api.deleteTask)

		tasks.POST(":taskID/share", api.shareTask)
		tasks.PATCH(":taskID/share/:user", api.updateSharing)
		tasks.DELETE(":taskID/share/:user", api.removeSharedUser)

		tasks.POST(":taskID/comments", api.addComment)
		tasks.GET(":taskID/comments", api.getComments)
		tasks.POST(":taskID/comments/:commentID/replies", api.addReply)

		tasks.POST(":taskID/attach", api.attachFile)
		tasks.PATCH(":taskID/status", api.updateTaskStatus)

		tasks.GET("reports/progress", api.progressReport)
	}

	api.httpSrv.Handler = router
}
