package mongo

import (
	"VillageEmpire/internal/shared/serverconfig"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

const defaultDatabase = "village_empire"

// Open 建立连接并 Ping 一次，失败时释放连接。
func Open(cfg serverconfig.MongoDBConfig, l *zap.Logger) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb uri is empty")
	}
	if l == nil {
		l = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout(cfg))
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI).SetConnectTimeout(connectTimeout(cfg)))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	l.Info("open mongodb success",
		zap.String("database", DatabaseName(cfg)),
	)
	return client, nil
}

// DatabaseName 返回配置的库名，未配置时使用默认库。
func DatabaseName(cfg serverconfig.MongoDBConfig) string {
	if cfg.Database == "" {
		return defaultDatabase
	}
	return cfg.Database
}

func connectTimeout(cfg serverconfig.MongoDBConfig) time.Duration {
	timeout := time.Duration(cfg.ConnectTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return timeout
}
