package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/academic-admin-service/internal/api/http"
	"github.com/spec-kit/academic-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/academic-admin-service/internal/auth"
	"github.com/spec-kit/academic-admin-service/internal/cache"
	"github.com/spec-kit/academic-admin-service/internal/config"
	"github.com/spec-kit/academic-admin-service/internal/events"
	"github.com/spec-kit/academic-admin-service/internal/observability"
	"github.com/spec-kit/academic-admin-service/internal/persistence"
	"github.com/spec-kit/academic-admin-service/internal/repository"
	"github.com/spec-kit/academic-admin-service/internal/service"
)

const bcryptCost = 12

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.InitPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	roomRepo := repository.NewRoomRepository(pool)
	termRepo := repository.NewTermRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	invalidator := cache.NewViewInvalidator(redis, logger)
	invalidator.RegisterHandlers(dispatcher)

	roomService := service.NewRoomService(service.RoomDependencies{
		RoomRepo:   roomRepo,
		TermRepo:   termRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	termService := service.NewTermService(termRepo)
	departmentService := service.NewDepartmentService(departmentRepo)
	userService := service.NewUserService(userRepo, bcryptCost)

	actorMiddleware := auth.NewActorMiddleware(auth.NewTokenVerifier(cfg.Auth.JWTSecret))

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Rooms:           handlers.NewRoomsHandler(roomService),
		Terms:           handlers.NewTermsHandler(termService),
		Departments:     handlers.NewDepartmentsHandler(departmentService),
		Users:           handlers.NewUsersHandler(userService),
		ActorMiddleware: actorMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
