// Package db MySQL 连接池，村庄存档的 mysql 驱动走这里。
package db

import (
	"VillageEmpire/internal/shared/logs"
	"VillageEmpire/internal/shared/serverconfig"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowSQL = 200 * time.Millisecond

// DSN 由配置拼出驱动连接串，时间字段按本地时区解析。
func DSN(cfg serverconfig.MySQLConfig) (string, error) {
	if cfg.Host == "" || cfg.DBName == "" {
		return "", errors.New("mysql host/dbname is empty")
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.DBName
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": charset}
	return mc.FormatDSN(), nil
}

// Open 建连接池，gorm 日志接入 logs，唯一键冲突翻译成 gorm.ErrDuplicatedKey。
func Open(cfg serverconfig.MySQLConfig) (*gorm.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	gdb, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger:         logs.NewGormLogger(logger.Warn, slowSQL),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql %s/%s: %w", cfg.Host, cfg.DBName, err)
	}

	pool, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxConn > 0 {
		pool.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.MaxIdle > 0 {
		pool.SetMaxIdleConns(cfg.MaxIdle)
	}
	pool.SetConnMaxLifetime(time.Hour)

	logs.Info("mysql ready", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return gdb, nil
}
