package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-inventory-client/internal/config"
	"go-inventory-client/internal/logger"
	"go-inventory-client/internal/model"
	"go-inventory-client/internal/repository"
	"go-inventory-client/internal/router"
	"go-inventory-client/internal/service"
	"go-inventory-client/internal/ws"
	"go-inventory-client/pkg/database"
	"go-inventory-client/pkg/jwt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if !config.LoadEnvFile() {
		log.Println("Warning: .env file not found")
	}
	cfg := config.LoadServer()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	// 2. Setup storage
	productRepo, userRepo, err := openStore(cfg, zlog)
	if err != nil {
		zlog.Fatal("open store", zap.Error(err))
	}

	// 3. Seed default user
	seedAdmin(userRepo, zlog)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(zlog.Named("ws"))
	go wsHub.Run()
	defer wsHub.Close()

	// 5. Dependency Injection (Wiring Layers)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTExpiration)
	app := router.New(router.Deps{
		Products:  service.NewProductService(productRepo, wsHub),
		Dashboard: service.NewDashboardService(productRepo),
		Auth:      service.NewAuthService(userRepo, tokens),
		Hub:       wsHub,
	})

	// 6. Graceful Shutdown
	go func() {
		zlog.Info("listening", zap.String("port", cfg.Port), zap.String("store", cfg.Store))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Panic("listen", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	wsHub.Close()
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}

func openStore(cfg *config.Server, zlog *zap.Logger) (repository.ProductRepository, repository.UserRepository, error) {
	switch cfg.Store {
	case config.StoreMemory:
		zlog.Warn("using in-memory store, data is lost on exit")
		return repository.NewMemoryProductRepo(), repository.NewMemoryUserRepo(), nil
	case config.StorePostgres:
		db, err := database.ConnectDB(cfg.DatabaseURL, zlog.Core().Enabled(zap.DebugLevel))
		if err != nil {
			return nil, nil, err
		}
		if err := repository.Migrate(db); err != nil {
			return nil, nil, err
		}
		zlog.Info("database connection established")
		return repository.NewProductRepo(db), repository.NewUserRepo(db), nil
	default:
		return nil, nil, errors.Errorf("unknown STORE %q", cfg.Store)
	}
}

// seedAdmin creates the default account if it does not exist
func seedAdmin(userRepo repository.UserRepository, zlog *zap.Logger) {
	const email = "admin@example.com"
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Email:    email,
		FullName: "Administrator",
		Role:     model.RoleUser,
		Active:   true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		zlog.Warn("failed to hash admin password", zap.Error(err))
		return
	}
	if err := userRepo.Create(admin); err != nil {
		zlog.Warn("failed to create admin user", zap.Error(err))
		return
	}
	zlog.Info("admin user created", zap.String("email", email))
}
