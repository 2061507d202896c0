package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitforum/controller"
	"fitforum/dao/store"
	"fitforum/logger"
	"fitforum/logic"
	"fitforum/pkg/snowflake"
	"fitforum/routers"
	"fitforum/settings"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	// 配置是程序运行的基础，必须最先加载
	var confFile string
	flag.StringVar(&confFile, "conf", "./config.yaml", "配置文件路径")
	flag.Parse()

	if err := settings.Init(confFile); err != nil {
		fmt.Printf("init settings failed, err:%v\n", err)
		return
	}

	// 2. 初始化雪花算法，话题/回复/用户 ID 都由它生成
	if err := snowflake.Init(settings.Conf.Snowflake.StartTime, settings.Conf.Snowflake.MachineID); err != nil {
		fmt.Printf("init snowflake failed, err:%v\n", err)
		return
	}

	// 3. 初始化日志，尽早就绪以便记录后续启动过程
	if err := logger.Init(settings.Conf.Log, settings.Conf.App.Mode); err != nil {
		fmt.Printf("init logger failed, err:%v\n", err)
		return
	}
	// zap 使用缓冲区，退出前必须 Sync
	defer zap.L().Sync()

	// 4. 打开本地存储
	// 核心依赖挂了必须 Fatal，不要带病运行；Path 为空时退化为内存存储
	var st store.Store
	if settings.Conf.Store != nil && settings.Conf.Store.Path != "" {
		ps, err := store.Open(settings.Conf.Store.Path)
		if err != nil {
			zap.L().Fatal("init store failed", zap.Error(err))
		}
		defer ps.Close()
		st = ps
	} else {
		zap.L().Warn("store path not configured, using in-memory store")
		st = store.NewMemory()
	}

	// 5. 组装业务对象
	// 仓库/账本/迁移器都是显式构造的对象，依赖逐级注入
	ledger := logic.NewLedger(st)
	repo := logic.NewRepository(st, ledger, nil)
	migrator := logic.NewMigrator(st)
	users := logic.NewUserService(st)

	oauthDelay := 1500 * time.Millisecond
	if settings.Conf.OAuth != nil {
		if d, err := time.ParseDuration(settings.Conf.OAuth.Delay); err == nil {
			oauthDelay = d
		}
	}
	oauth := logic.NewOAuthSimulator(users, oauthDelay, nil)

	// 6. 启动时执行一次旧数据迁移
	// 迁移自身幂等，已迁移的实例上是空操作
	if result := migrator.Migrate(); !result.Success {
		zap.L().Error("startup migration failed", zap.String("error", result.Error))
	} else if result.MigratedPosts > 0 {
		zap.L().Info("startup migration done",
			zap.Int("posts", result.MigratedPosts),
			zap.Int("comments", result.MigratedComments))
	}

	// 7. 加载话题集合，空库时播种示例数据
	if err := repo.Initialize(); err != nil {
		zap.L().Fatal("init topic repository failed", zap.Error(err))
	}

	// 8. 初始化 Validator 翻译器并注入 Handler 依赖
	if err := controller.InitTrans("zh"); err != nil {
		zap.L().Fatal("init validator trans failed", zap.Error(err))
	}
	controller.Init(repo, ledger, migrator, users, oauth)

	// 9. 注册路由
	r := routers.SetupRouter(settings.Conf.App.Mode)

	// 10. 启动服务 (优雅关机模式)
	port := settings.Conf.App.Port
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	// ListenAndServe 是阻塞的，放在 goroutine 里以便执行优雅关机
	go func() {
		zap.L().Info("Server is running...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("listen failed", zap.Error(err))
		}
	}()

	// 11. 等待中断信号，优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutdown Server ...")

	// 给服务器 5 秒时间处理完当前请求
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Fatal("Server Shutdown failed", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}
