package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/forum-comments/internal/repository"
	mysqlRepo "github.com/Guyuepp/forum-comments/internal/repository/mysql"
	myRedisCache "github.com/Guyuepp/forum-comments/internal/repository/redis"
	"github.com/Guyuepp/forum-comments/internal/rest"
	"github.com/Guyuepp/forum-comments/internal/rest/middleware"
	"github.com/Guyuepp/forum-comments/internal/usecase/comment"
	"github.com/Guyuepp/forum-comments/internal/usecase/topic"
	"github.com/Guyuepp/forum-comments/internal/usecase/user"
	"github.com/Guyuepp/forum-comments/internal/workers"
)

const (
	defaultTimeout      = 30
	defaultAddress      = ":9090"
	defaultCacheDB      = 0
	defaultBloomBitSize = 10000000
	defaultJWTTTLHours  = 24
	defaultSyncSeconds  = 10
	dbMaxRetry          = 10
	dbRetryIntervalSec  = 2
)

func init() {
	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file loaded, using process environment")
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		logrus.Infof("failed to parse %s, using default %d", key, def)
		return def
	}
	return v
}

func main() {
	//prepare database
	loc, err := time.LoadLocation(os.Getenv("DATABASE_TIMEZONE"))
	if err != nil {
		loc = time.UTC
	}
	dbCfg := mysqlDriver.NewConfig()
	dbCfg.User = os.Getenv("DATABASE_USER")
	dbCfg.Passwd = os.Getenv("DATABASE_PASS")
	dbCfg.Net = "tcp"
	dbCfg.Addr = net.JoinHostPort(os.Getenv("DATABASE_HOST"), os.Getenv("DATABASE_PORT"))
	dbCfg.DBName = os.Getenv("DATABASE_NAME")
	dbCfg.ParseTime = true
	dbCfg.Loc = loc
	dsn := dbCfg.FormatDSN()

	var db *gorm.DB
	for i := 0; i < dbMaxRetry; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			logrus.Warnf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				err = dbErr
				logrus.Warnf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			} else if err = sqlDB.Ping(); err == nil {
				break
			} else {
				logrus.Warnf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				_ = sqlDB.Close()
			}
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		logrus.Fatalf("could not connect to database after retries: %v", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			logrus.Errorf("got error when getting sql.DB from gorm.DB: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("got error when closing the DB connection: %v", err)
		}
	}()

	if autoMigrate, _ := strconv.ParseBool(os.Getenv("AUTO_MIGRATE")); autoMigrate {
		if err := mysqlRepo.AutoMigrate(db); err != nil {
			logrus.Fatalf("failed to migrate database: %v", err)
		}
	}

	// prepare cache
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(os.Getenv("CACHE_HOST"), os.Getenv("CACHE_PORT")),
		Password: os.Getenv("CACHE_PASS"),
		DB:       envInt("CACHE_DB", defaultCacheDB),
	})
	defer func() {
		if err := client.Close(); err != nil {
			logrus.Errorf("got error when closing the cache connection: %v", err)
		}
	}()

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		logrus.Errorf("failed to open connection to cache: %v", err)
		return
	}

	// prepare gin
	route := gin.New()
	route.Use(gin.Recovery())
	route.Use(middleware.RequestID())
	route.Use(middleware.CORS())
	timeoutContext := time.Duration(envInt("CONTEXT_TIMEOUT", defaultTimeout)) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// Prepare Repository
	userRepo := mysqlRepo.NewUserRepository(db)
	topicRepo := mysqlRepo.NewTopicRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	topicCache := myRedisCache.NewTopicCache(client)
	commentCache := myRedisCache.NewCommentCache(client)

	// 评论树协调层：缓存 + 数据库 + 作者
	treeRepo := repository.NewCommentTreeRepository(topicRepo, commentRepo, commentCache, userRepo)

	bloomBitSize, err := strconv.ParseUint(os.Getenv("BLOOM_FILTER_SIZE"), 10, 64)
	if err != nil {
		logrus.Info("failed to parse bloom bit size, using default size")
		bloomBitSize = defaultBloomBitSize
	}
	bloomRepo := myRedisCache.NewRedisBloomRepo(client, bloomBitSize)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	syncInterval := time.Duration(envInt("VIEWS_SYNC_INTERVAL", defaultSyncSeconds)) * time.Second
	viewsSyncer := workers.NewSyncViewWorker(topicRepo, topicCache, syncInterval)
	go viewsSyncer.Start(ctx)

	// Build service Layer
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logrus.Error("JWT_SECRET is not set")
		return
	}
	jwtTTL := time.Duration(envInt("JWT_EXPIRE_HOURS", defaultJWTTTLHours)) * time.Hour

	topicSvc := topic.NewService(topicRepo, topicCache, treeRepo, userRepo, bloomRepo)
	userSvc := user.NewService(userRepo, []byte(jwtSecret), jwtTTL)
	commentSvc := comment.NewService(commentRepo, topicRepo, treeRepo, userRepo, bloomRepo)
	topicHandler := rest.NewTopicHandler(topicSvc)
	userHandler := rest.NewUserHandler(userSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)

	// Prepare bloom filter
	if err := topicSvc.InitBloomFilter(ctx); err != nil {
		logrus.Errorf("failed to init bloom filter: %v", err)
		return
	}

	// Register routes
	route.POST("/register", userHandler.Register)
	route.POST("/login", userHandler.Login)

	public := route.Group("/")
	public.Use(middleware.OptionalAuth(jwtSecret))
	{
		public.GET("/topics/:id", topicHandler.GetByID)
		public.GET("/topics/:id/comments", commentHandler.FetchCommentsByTopic)
	}

	authorized := route.Group("/")
	authorized.Use(middleware.AuthMiddleware(jwtSecret))
	{
		authorized.POST("/topics", topicHandler.Store)
		authorized.POST("/topics/:id/comments", commentHandler.CreateComment)
		authorized.POST("/comments/:id/replies", commentHandler.CreateReply)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		logrus.Infof("Server is running on %s", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Waiting for worker to cleanup...")
	select {
	case <-viewsSyncer.Done():
	case <-shutdownCtx.Done():
	}

	logrus.Info("Server exiting")
}
