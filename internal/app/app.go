package app

import (
	"context"
	"crypto/rand"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"codevimarsh/internal/api"
	"codevimarsh/internal/middleware"
	"codevimarsh/internal/models"
	"codevimarsh/internal/repository"
	"codevimarsh/internal/service"
	"codevimarsh/internal/stats"
	"codevimarsh/internal/storage"
	"codevimarsh/internal/utils"
	"codevimarsh/pkg/config"
)

const (
	diagnoseTimeout  = 10 * time.Second
	redisPingTimeout = 2 * time.Second
)

// App 持有閘道執行期間需要的所有資源
type App struct {
	Config *config.Config
	Engine *gin.Engine

	db  *storage.Database
	rdb *redis.Client
}

// Bootstrap 依設定組裝整個閘道。
// 只有設定錯誤會回傳 error；資料庫與 Redis 失敗只記錄，閘道照常啟動。
// ctx 結束時背景工作（限流清理）跟著停止。
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	// 初始化資料庫連接
	db, err := storage.Open(cfg.DB)
	if err != nil {
		log.Printf("database unavailable: %v", err)
	} else {
		a.db = db
		a.diagnose(ctx)
	}

	// 初始化 services
	var services *service.Services
	if a.db != nil {
		tokens := utils.NewTokenManager(jwtSecret(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
		services = service.NewServices(repository.NewRepositories(a.db), tokens)
	}

	deps := api.Dependencies{
		Config: cfg,
		Groups: api.NewGroups(cfg, services),
		Stats:  a.statsRecorder(ctx),
	}
	if a.db != nil {
		deps.Pool = a.db.Pool()
	}
	if cfg.RateLimit.Enabled {
		store := middleware.NewRateLimitStore(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		store.StartJanitor(ctx)
		deps.RateLimit = store
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	a.Engine = api.NewServer(deps)
	return a, nil
}

func (a *App) diagnose(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, diagnoseTimeout)
	defer cancel()

	if err := a.db.Diagnose(ctx); err != nil {
		return
	}
	if a.Config.DB.AutoMigrate {
		// 自動遷移資料庫結構
		if err := a.db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("auto migrate failed: %v", err)
		}
	}
}

func (a *App) statsRecorder(ctx context.Context) stats.Recorder {
	sc := a.Config.Stats
	if !sc.Enabled() {
		return stats.Nop{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     sc.RedisAddr,
		Password: sc.RedisPassword,
		DB:       sc.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("warning: redis stats disabled: %v", err)
		_ = rdb.Close()
		return stats.Nop{}
	}

	a.rdb = rdb
	return stats.NewRedisRecorder(rdb, stats.WithPrefix(sc.Prefix), stats.WithTTL(sc.TTL))
}

// Close 釋放資料庫與 Redis 連線
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}

// jwtSecret 在未設定 JWT_SECRET 時改用隨機金鑰，重新啟動後舊 token 失效
func jwtSecret(secret string) []byte {
	if secret != "" {
		return []byte(secret)
	}
	log.Printf("warning: JWT_SECRET is not set, using a random secret")
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
