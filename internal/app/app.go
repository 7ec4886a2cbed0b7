package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habitflow_backend/internal/config"
	"habitflow_backend/internal/controller"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/service"
	"habitflow_backend/pkg/database"
	"habitflow_backend/pkg/logger"
	"habitflow_backend/pkg/monitoring"
	"habitflow_backend/pkg/security"
	"habitflow_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	category  *repository.CategoryRepository
	habit     *repository.HabitRepository
	task      *repository.TaskRepository
	goal      *repository.GoalRepository
	routine   *repository.RoutineRepository
	schedule  *repository.ScheduleRepository
	itemGroup *repository.ItemGroupRepository
	xpByLevel *repository.XpByLevelRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	user      *service.UserService
	category  *service.CategoryService
	habit     *service.HabitService
	task      *service.TaskService
	goal      *service.GoalService
	routine   *service.RoutineService
	schedule  *service.ScheduleService
	itemGroup *service.ItemGroupService
	check     *service.CheckService
	progress  *service.ProgressService
	xpLevel   *service.XpLevelService
}

type controllers struct {
	health    *controller.HealthController
	auth      *controller.AuthController
	user      *controller.UserController
	category  *controller.CategoryController
	habit     *controller.HabitController
	task      *controller.TaskController
	goal      *controller.GoalController
	routine   *controller.RoutineController
	schedule  *controller.ScheduleController
	itemGroup *controller.ItemGroupController
	check     *controller.CheckController
	progress  *controller.ProgressController
}

// RegisterConfigCallback 注册配置热更新回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 把新配置分发给所有回调
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		category:  repository.NewCategoryRepository(db),
		habit:     repository.NewHabitRepository(db),
		task:      repository.NewTaskRepository(db),
		goal:      repository.NewGoalRepository(db),
		routine:   repository.NewRoutineRepository(db),
		schedule:  repository.NewScheduleRepository(db),
		itemGroup: repository.NewItemGroupRepository(db),
		xpByLevel: repository.NewXpByLevelRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	storage := service.NewStorageService(cfg)
	xpLevel := service.NewXpLevelService(repos.xpByLevel, db)

	return &services{
		auth:      service.NewAuthService(repos.user, cfg),
		storage:   storage,
		user:      service.NewUserService(repos.user, storage),
		category:  service.NewCategoryService(repos.category),
		habit:     service.NewHabitService(repos.habit, repos.category),
		task:      service.NewTaskService(repos.task, repos.category),
		goal:      service.NewGoalService(repos.goal, repos.user, repos.category, xpLevel, db),
		routine:   service.NewRoutineService(repos.routine, repos.schedule, repos.itemGroup, repos.habit, repos.task, db),
		schedule:  service.NewScheduleService(repos.schedule, repos.routine, db),
		itemGroup: service.NewItemGroupService(repos.routine),
		check:     service.NewCheckService(repos.itemGroup, repos.habit, repos.task, repos.user, repos.category, db),
		progress:  service.NewProgressService(repos.user, repos.goal, repos.category, xpLevel, rdb),
		xpLevel:   xpLevel,
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		health:    controller.NewHealthController(db),
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		category:  controller.NewCategoryController(s.category),
		habit:     controller.NewHabitController(s.habit),
		task:      controller.NewTaskController(s.task),
		goal:      controller.NewGoalController(s.goal),
		routine:   controller.NewRoutineController(s.routine),
		schedule:  controller.NewScheduleController(s.schedule),
		itemGroup: controller.NewItemGroupController(s.itemGroup),
		check:     controller.NewCheckController(s.check),
		progress:  controller.NewProgressController(s.progress, s.xpLevel),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting (migrate-only mode)")
		os.Exit(0)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 排行榜缓存可降级，Redis 不可用时只打日志
		logger.Log.Warn("Failed to initialize redis, leaderboard cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	// 等级表在首次启动时写入，已存在则跳过
	if n, err := services.xpLevel.SeedLevels(); err != nil {
		logger.Log.Fatal("Failed to seed level table", zap.Error(err))
	} else if n > 0 {
		logger.Log.Info("Level table seeded", zap.Int("levels", n))
	}

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("habitflow-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
