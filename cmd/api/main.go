package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gamepulse-go/internal/api/handler"
	"gamepulse-go/internal/api/middleware"
	"gamepulse-go/internal/api/router"
	"gamepulse-go/internal/config"
	"gamepulse-go/internal/infra/database"
	infraES "gamepulse-go/internal/infra/elasticsearch"
	infraKafka "gamepulse-go/internal/infra/kafka"
	infraMinio "gamepulse-go/internal/infra/minio"
	infraRedis "gamepulse-go/internal/infra/redis"
	"gamepulse-go/internal/mail"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"
	"gamepulse-go/internal/service"
	"gamepulse-go/pkg/logger"

	_ "gamepulse-go/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title GamePulse API
// @version 1.0
// @description 游戏资讯平台 API 服务
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@gamepulse.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 自动迁移数据库表
	if err := database.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.News{},
		&model.Comment{},
		&model.CommentVote{},
		&model.NewsRating{},
		&model.Report{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化MinIO
	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Kafka生产者
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		defer infraES.Close()
		if err := infraES.InitIndexes(); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	// 使用自定义中间件
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	reportRepo := repository.NewReportRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)

	mailer := mail.NewMailer(&cfg.SMTP)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	newsService := service.NewNewsService(db, newsRepo, commentRepo, voteRepo, ratingRepo, reportRepo, categoryRepo, tagRepo)
	commentService := service.NewCommentService(db, commentRepo, voteRepo, reportRepo, newsRepo)
	voteService := service.NewVoteService(db, voteRepo, commentRepo)
	ratingService := service.NewRatingService(db, ratingRepo, newsRepo)
	reportService := service.NewReportService(reportRepo, commentRepo)
	moderationService := service.NewModerationService(db, reportRepo, commentRepo, voteRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	tagService := service.NewTagService(tagRepo)
	searchService := service.NewSearchService(newsRepo)
	newsletterService := service.NewNewsletterService(userRepo, newsRepo, mailer)
	statsService := service.NewStatsService(userRepo, newsRepo, commentRepo, reportRepo)
	maintenanceService := service.NewMaintenanceService(db, commentRepo, voteRepo, newsRepo, ratingRepo)

	// 浏览量缓冲定时回写（后台 goroutine）
	flusherCtx, flusherCancel := context.WithCancel(context.Background())
	defer flusherCancel()
	go infraRedis.StartViewCountFlusher(flusherCtx, 30*time.Second, newsService.ApplyViewCountDelta)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	newsHandler := handler.NewNewsHandler(newsService, ratingService)
	commentHandler := handler.NewCommentHandler(commentService)
	voteHandler := handler.NewVoteHandler(voteService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	reportHandler := handler.NewReportHandler(reportService)
	moderationHandler := handler.NewModerationHandler(moderationService)
	taxonomyHandler := handler.NewTaxonomyHandler(categoryService, tagService)
	searchHandler := handler.NewSearchHandler(searchService)
	newsletterHandler := handler.NewNewsletterHandler(newsletterService)
	adminHandler := handler.NewAdminHandler(statsService, maintenanceService)

	// 角色中间件（需要查数据库获取角色）
	roleFetcher := func(userID int64) (string, error) {
		user, err := userRepo.GetByID(userID)
		if err != nil {
			return "", err
		}
		return user.UserRole, nil
	}
	editorMiddleware := middleware.EditorRequired(roleFetcher)
	adminMiddleware := middleware.AdminRequired(roleFetcher)

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)
	r.GET("/", rootHandler)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r,
		authHandler, userHandler, newsHandler, commentHandler,
		voteHandler, ratingHandler, reportHandler, moderationHandler,
		taxonomyHandler, searchHandler, newsletterHandler, adminHandler,
		editorMiddleware, adminMiddleware,
	)

	// 启动服务器
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("minio", cfg.MinIO.Endpoint),
		zap.Strings("kafka", cfg.Kafka.Brokers),
	)

	// 启动HTTP服务器
	logger.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	logger.Debug("Health check requested", zap.String("ip", c.ClientIP()))

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}

// rootHandler 根路径处理器
func rootHandler(c *gin.Context) {
	cfg := config.Get()

	logger.Info("Root endpoint accessed", zap.String("ip", c.ClientIP()))

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to %s API", cfg.App.Name),
		"project": cfg.App.Name,
		"version": cfg.App.Version,
		"mode":    cfg.App.Mode,
		"docs":    fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.App.Port),
	})
}
