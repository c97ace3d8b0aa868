package main

import (
	accountapp "VillageEmpire/internal/account/app"
	accountmemory "VillageEmpire/internal/account/infra/persistence/memory"
	accountmongo "VillageEmpire/internal/account/infra/persistence/mongodb"
	accountmysql "VillageEmpire/internal/account/infra/persistence/mysql"
	accountinterfaces "VillageEmpire/internal/account/interfaces"
	"VillageEmpire/internal/shared/gameconfig/building"
	"VillageEmpire/internal/shared/infrastructure/db"
	sharedmongo "VillageEmpire/internal/shared/infrastructure/mongo"
	"VillageEmpire/internal/shared/logs"
	"VillageEmpire/internal/shared/security"
	"VillageEmpire/internal/shared/serverconfig"
	"VillageEmpire/internal/shared/session"
	transportgrpc "VillageEmpire/internal/shared/transport/grpc"
	transporthttp "VillageEmpire/internal/shared/transport/http"
	"VillageEmpire/internal/shared/transport/ws"
	"VillageEmpire/internal/shared/utils"
	villageactor "VillageEmpire/internal/village/actor"
	"VillageEmpire/internal/village/actors"
	"VillageEmpire/internal/village/app"
	"VillageEmpire/internal/village/infra/persistence/memory"
	villagemongo "VillageEmpire/internal/village/infra/persistence/mongodb"
	villagemysql "VillageEmpire/internal/village/infra/persistence/mysql"
	"VillageEmpire/internal/village/interfaces"
	"VillageEmpire/internal/village/interfaces/handler"
	villagews "VillageEmpire/internal/village/interfaces/handler/ws"
	"VillageEmpire/modules/kit/logx"
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const grpcHealthService = "village"

type stores struct {
	villages app.VillageRepository
	users    accountapp.UserRepo
	close    func()
}

// openStores 按 storage.driver 选择存档实现，村庄与账号共用同一个连接。
func openStores(ctx context.Context, conf serverconfig.Config, logger *zap.Logger) (*stores, error) {
	switch conf.Storage.Driver {
	case "", serverconfig.StorageMemory:
		logs.Warn("使用内存存档，进程退出后数据丢失")
		return &stores{villages: memory.NewVillageRepo(), users: accountmemory.NewUserRepo(), close: func() {}}, nil
	case serverconfig.StorageMongoDB:
		client, err := sharedmongo.Open(conf.MongoDB, logger)
		if err != nil {
			return nil, fmt.Errorf("open mongodb: %w", err)
		}
		closer := func() { _ = client.Disconnect(context.Background()) }
		database := client.Database(sharedmongo.DatabaseName(conf.MongoDB))
		villages := villagemongo.NewVillageRepo(database)
		if err := villages.EnsureIndexes(ctx); err != nil {
			closer()
			return nil, fmt.Errorf("ensure village indexes: %w", err)
		}
		users := accountmongo.NewUserRepo(database)
		if err := users.EnsureIndexes(ctx); err != nil {
			closer()
			return nil, fmt.Errorf("ensure user indexes: %w", err)
		}
		return &stores{villages: villages, users: users, close: closer}, nil
	case serverconfig.StorageMySQL:
		gdb, err := db.Open(conf.MySQL)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		closer := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		villages := villagemysql.NewVillageRepo(gdb)
		users := accountmysql.NewUserRepo(gdb)
		if conf.MySQL.AutoMigrate {
			if err := villages.AutoMigrate(); err != nil {
				closer()
				return nil, fmt.Errorf("auto migrate village: %w", err)
			}
			if err := users.AutoMigrate(); err != nil {
				closer()
				return nil, fmt.Errorf("auto migrate user: %w", err)
			}
		}
		return &stores{villages: villages, users: users, close: closer}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}

func addr(host string, port int) string {
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", host, port)
}

func main() {
	cfgPath := flag.String("config", "", "配置文件路径，默认向上查找 configs/conf.yml")
	flag.Parse()

	if err := serverconfig.Load(*cfgPath); err != nil {
		panic(err)
	}
	conf := serverconfig.Conf
	if err := logs.Init("village", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.String("storage", conf.Storage.Driver), zap.Any("engine", conf.Engine))

	if err := security.CheckSecret(conf.Log.Dev); err != nil {
		logs.Fatal("jwt secret rejected, set JWT_SECRET", zap.Error(err))
	}

	logger := logs.Logger()
	log := logx.NewZapLogger(logger)

	catalog, err := building.Load()
	if err != nil {
		logs.Fatal("load building catalog failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, conf, logger)
	if err != nil {
		logs.Fatal("open storage failed", zap.Error(err))
	}
	defer st.close()

	ids, err := utils.NewSnowflake(conf.NodeID)
	if err != nil {
		logs.Fatal("init snowflake failed", zap.Error(err))
	}
	clock := func() int64 { return time.Now().UnixMilli() }
	svc := app.NewVillageService(st.villages, catalog, clock, ids.NextID, log, conf.Engine.InitialSpeedUps)

	sess := session.NewSessMgr()
	rt := villageactor.NewRuntime(svc, villagews.NewPushNotifier(sess), actors.Options{
		ConstructionPoll: conf.Engine.ConstructionPoll(),
		ResourcePoll:     conf.Engine.ResourcePoll(),
		PassivateAfter:   conf.Engine.PassivateAfter(),
	}, conf.Engine.AskTimeout())

	module := interfaces.New(handler.NewVillage(rt, catalog, sess, log))
	users := accountapp.NewUserService(st.users, security.Bcrypt{}, security.Award, ids.NextID, clock, log)
	account := accountinterfaces.New(users, sess, log)

	httpAddr := addr(conf.HTTPServer.Host, conf.HTTPServer.Port)
	if !conf.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := transporthttp.NewHttpServer(httpAddr, gin.New(), log)
	httpServer.Register(account, module)
	if conf.HTTPServer.WsPath != "" {
		router := ws.NewRouter(log)
		module.WsRegister(router)
		httpServer.Engine().GET(conf.HTTPServer.WsPath, gin.WrapH(ws.NewServer(router, log)))
	}

	errCh := make(chan error, 2)
	go func() {
		logs.Info("village http server started", zap.String("addr", httpAddr), zap.String("ws", conf.HTTPServer.WsPath))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("village http serve failed: %w", err)
		}
	}()

	var grpcServer *transportgrpc.Server
	if conf.GRPCServer.Enabled {
		grpcServer = transportgrpc.NewServer(addr(conf.GRPCServer.Host, conf.GRPCServer.Port), log)
		grpcServer.SetServing("", true)
		grpcServer.SetServing(grpcHealthService, true)
		go func() {
			if err := grpcServer.Start(); err != nil {
				errCh <- fmt.Errorf("village grpc serve failed: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if grpcServer != nil {
		grpcServer.SetServing(grpcHealthService, false)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logs.Error("http shutdown failed", zap.Error(err))
	}
	// 先停入口再停 actor，保证在途请求能拿到结果
	rt.Shutdown()
	if grpcServer != nil {
		grpcServer.Stop()
	}
}
