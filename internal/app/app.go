package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"award_backend/internal/config"
	"award_backend/internal/controller"
	"award_backend/internal/repository"
	"award_backend/internal/service"
	"award_backend/pkg/configwatcher"
	"award_backend/pkg/database"
	"award_backend/pkg/logger"
	"award_backend/pkg/monitoring"
	"award_backend/pkg/security"
	"award_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user     repository.UserRepository
	group    repository.GroupRepository
	category repository.CategoryRepository
	question repository.QuestionRepository
	session  repository.SessionRepository
	response repository.ResponseRepository
	review   repository.ReviewRepository
	ranking  repository.RankingRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	catalog  *service.CatalogService
	review   *service.ReviewService
	session  *service.SessionService
	response *service.ResponseService
	scoring  *service.ScoringService
	ranking  *service.RankingService
}

type controllers struct {
	auth    *controller.AuthController
	session *controller.SessionController
	review  *controller.ReviewController
	catalog *controller.CatalogController
	ranking *controller.RankingController
	health  *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		group:    repository.NewGroupRepository(db),
		category: repository.NewCategoryRepository(db),
		question: repository.NewQuestionRepository(db),
		session:  repository.NewSessionRepository(db),
		response: repository.NewResponseRepository(db),
		review:   repository.NewReviewRepository(db),
		ranking:  repository.NewRankingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.catalog = service.NewCatalogService(repos.question, repos.category, repos.group)
	s.review = service.NewReviewService(repos.review, repos.session)
	s.session = service.NewSessionService(repos.session, repos.response, repos.question, repos.group, s.review)
	s.response = service.NewResponseService(repos.session, repos.response, repos.question, s.review)
	s.scoring = service.NewScoringService(repos.question, repos.response, repos.session)
	s.ranking = service.NewRankingService(repos.ranking, repos.session, rdb, cfg.Rubric)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		session: controller.NewSessionController(s.session, s.response, s.scoring, s.storage),
		review:  controller.NewReviewController(s.review),
		catalog: controller.NewCatalogController(s.catalog),
		ranking: controller.NewRankingController(s.ranking),
		health:  controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks runs the periodic ranking refresh, a safety net for
// missed cache invalidations, and the config hot reload.
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			if err := s.ranking.RefreshAll(context.Background()); err != nil {
				logger.Log.Error("ranking refresh error", zap.Error(err))
			}
		}
	}()

	go configwatcher.WatchConfig("configs/config.yaml", func(cfg *config.Config) {
		s.ranking.SetRubric(cfg.Rubric)
		logger.Log.Info("Config reloaded", zap.Strings("rubricDimensions", cfg.Rubric.Dimensions))
	})
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

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("award-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
