package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodstore/internal/config"
	"foodstore/internal/domain/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// pgxでDSNを解釈して database/sql のプールを作り、gormに渡す。
// SQLログは log（component=gorm）に出す。
func Connect(ctx context.Context, cfg config.Config, log *slog.Logger) (*gorm.DB, error) {
	pgxCfg, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// 繋がらなければすぐ失敗
	pingCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         newGormLogger(cfg, log),
		TranslateError: true,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return gdb, nil
}

// SQLログは遅いクエリとエラーだけ
func newGormLogger(cfg config.Config, log *slog.Logger) logger.Interface {
	level := logger.Warn
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}

	return logger.NewSlogLogger(log, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate はテーブルを作成・更新する
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.RoleRecord{},
		&model.User{},
		&model.MenuCategory{},
		&model.MenuItem{},
		&model.Cart{},
		&model.CartItem{},
		&model.Invoice{},
		&model.InvoiceLine{},
		&model.OrderHistory{},
		&model.AuditLog{},
	)
}

// Close は下のsql.DBを閉じる
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
