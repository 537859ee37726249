package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vinealis/vinea-backend/internal/config"
	"github.com/vinealis/vinea-backend/internal/handler"
	"github.com/vinealis/vinea-backend/internal/middleware"
	"github.com/vinealis/vinea-backend/internal/migration"
	"github.com/vinealis/vinea-backend/internal/repository"
	"github.com/vinealis/vinea-backend/internal/routes"
	"github.com/vinealis/vinea-backend/internal/service"
	"github.com/vinealis/vinea-backend/pkg/jwt"
	pkglogger "github.com/vinealis/vinea-backend/pkg/logger"
	pkgredis "github.com/vinealis/vinea-backend/pkg/redis"
	"github.com/vinealis/vinea-backend/pkg/sanitize"
	pkgstorage "github.com/vinealis/vinea-backend/pkg/storage"
)

// @title           Vinea Backend API
// @version         1.0
// @description     Vinealis vineyard site - content management backend
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.GetLogger().Info().
		Str("env", env).
		Strs("env_files", dotenvFiles).
		Msg("starting")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis is optional; without it the response cache and the refresh token
	// denylist degrade gracefully.
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = pkgredis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("redis unavailable, cache and token denylist disabled")
			rdb = nil
		}
	}

	var s3Client *pkgstorage.S3Client
	if cfg.Storage.Enabled && cfg.Storage.Bucket != "" {
		s3Client, err = pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("storage init failed, uploads disabled")
			s3Client = nil
		}
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL.Duration, cfg.JWT.RefreshTokenTTL.Duration)

	// Repositories
	pageRepo := repository.NewPageRepository(db)
	versionRepo := repository.NewPageVersionRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)
	themeRepo := repository.NewThemeRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Services
	recorder := service.NewAuditRecorder(auditRepo)
	sanitizer := sanitize.NewPolicy()
	pageSvc := service.NewPageService(db, pageRepo, versionRepo, recorder)
	overrideSvc := service.NewOverrideService(db, pageRepo, overrideRepo, recorder, sanitizer)
	themeSvc := service.NewThemeService(db, themeRepo, recorder)
	auditSvc := service.NewAuditService(auditRepo)
	authSvc := service.NewAuthService(userRepo, jwtManager, rdb, cfg.JWT.RefreshTokenTTL.Duration)
	userSvc := service.NewUserService(userRepo)
	imageSvc := service.NewImageService(imageRepo, s3Client)

	// Handlers
	cacheCfg := middleware.DefaultCacheConfig()
	pageHandler := handler.NewPageHandler(pageSvc, rdb, cacheCfg)
	overrideHandler := handler.NewOverrideHandler(overrideSvc, rdb, cacheCfg)
	themeHandler := handler.NewThemeHandler(themeSvc, rdb, cacheCfg)
	auditHandler := handler.NewAuditHandler(auditSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	imageHandler := handler.NewImageHandler(imageSvc)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.Server.CORSOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Cache"},
		MaxAge:           86400,
	}))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "vinea-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(router,
		pageHandler, overrideHandler, themeHandler, auditHandler,
		authHandler, userHandler, imageHandler,
		jwtManager, rdb, cacheCfg,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	pkglogger.GetLogger().Info().Int("port", cfg.Server.Port).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

// initDB opens the MySQL connection and configures the pool
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	gormLogLevel := gormlogger.Warn
	if os.Getenv("APP_ENV") == "local" {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	go func() {
		for range time.Tick(15 * time.Second) {
			middleware.SetDBConnectionsActive(float64(sqlDB.Stats().InUse))
		}
	}()

	return db, nil
}
