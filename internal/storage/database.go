package storage

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"codevimarsh/pkg/config"
)

// Database 包裝 gorm 連線與其底層的連線池
type Database struct {
	*gorm.DB
	driver string
	name   string
	pool   *Pool
}

// Open 建立資料庫連線池，不會主動連線；
// 第一次真正的連線發生在 Diagnose 或第一個查詢
func Open(cfg config.DBConfig) (*Database, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Database{
		DB:     db,
		driver: cfg.Driver,
		name:   cfg.Name,
		pool:   NewPool(sqlDB, cfg.MaxOpenConns, cfg.AcquireTimeout),
	}, nil
}

func newDialector(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.New(mysql.Config{
			DSN:                       mysqlDSN(cfg),
			SkipInitializeWithVersion: true,
		}), nil
	case "postgres":
		return postgres.Open(postgresDSN(cfg)), nil
	case "sqlite":
		// modernc.org/sqlite 以 "sqlite" 名稱註冊，不需要 cgo
		return &sqlite.Dialector{DriverName: "sqlite", DSN: cfg.Name}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func mysqlDSN(cfg config.DBConfig) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	c := gomysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	c.DBName = cfg.Name
	c.ParseTime = true
	return c.FormatDSN()
}

func postgresDSN(cfg config.DBConfig) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable&TimeZone=UTC",
	}
	return u.String()
}

// Pool 回傳共用的連線池
func (db *Database) Pool() *Pool {
	return db.pool
}

func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate 自動遷移資料庫結構
func (db *Database) AutoMigrate(models ...interface{}) error {
	return db.DB.AutoMigrate(models...)
}

// Diagnose 取出一條連線做連線測試並記錄結果。
// 失敗只記錄錯誤，不結束程式，健康檢查等路由仍需可用。
func (db *Database) Diagnose(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		log.Printf("%s connection error: %v", db.driver, err)
		log.Printf("error code: %s", ErrorCode(err))
		log.Printf("please check:")
		log.Printf("1. the %s service is running and reachable at DB_HOST/DB_PORT", db.driver)
		log.Printf("2. DB_NAME is set (currently %q)", db.name)
		log.Printf("3. DB_USER and DB_PASSWORD are correct")
		log.Printf("4. the database and its tables are created")
		return err
	}

	name := db.Migrator().CurrentDatabase()
	if name == "" {
		name = db.name
	}
	log.Printf("%s connected successfully", db.driver)
	log.Printf("database: %s", name)
	return nil
}
