package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/gestion-cliente/internal/application/auth"
	"github.com/jhoicas/gestion-cliente/internal/application/ports"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
	"github.com/jhoicas/gestion-cliente/internal/domain/repository"
	"github.com/jhoicas/gestion-cliente/internal/infrastructure/api"
	"github.com/jhoicas/gestion-cliente/internal/infrastructure/mock"
	infrapdf "github.com/jhoicas/gestion-cliente/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-cliente/internal/infrastructure/storage"
	"github.com/jhoicas/gestion-cliente/internal/interfaces/cli"
	"github.com/jhoicas/gestion-cliente/internal/interfaces/console"
	"github.com/jhoicas/gestion-cliente/pkg/config"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		return cli.ExitUsage
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Debug().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Bool("mock", cfg.API.Mock).
		Str("sesion", cfg.Session.Driver).
		Msg("iniciando cliente")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := openSessionBackend(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("almacenamiento de sesión")
		return cli.ExitFailed
	}
	defer closeKV()

	store := storage.NewSessionStore(kv, log)
	if _, err := store.EnsureCacheVersion(cfg.Session.CacheVersion); err != nil {
		log.Warn().Err(err).Msg("no se pudo verificar la versión de caché")
	}
	if _, err := store.MigrateLegacy(); err != nil {
		log.Warn().Err(err).Msg("no se pudo migrar la sesión anterior")
	}

	// Backend: cliente REST o simulado en proceso. El gestor de sesión se conecta después
	// como fuente del token y receptor de los 401.
	var (
		backend ports.Backend
		bind    func(m *auth.Manager)
	)
	if cfg.API.Mock {
		mb := mock.New(log)
		backend = mb.Ports()
		bind = func(m *auth.Manager) { mb.SetTokenSource(m) }
		log.Info().Msg("usando backend simulado")
	} else {
		client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), log)
		backend = api.NewBackend(client)
		bind = func(m *auth.Manager) {
			client.SetTokenSource(m)
			client.SetUnauthorizedHandler(m.ExpireToken)
		}
	}

	manager := auth.NewManager(store, backend.Auth, log)
	bind(manager)
	if sess := manager.Initialize(); sess.IsAuthenticated {
		vctx, cancel := context.WithTimeout(ctx, cfg.API.Timeout())
		manager.Validate(vctx)
		cancel()
	}

	reports := usecase.NewReportUseCase(backend, manager, log)
	pdf := infrapdf.NewReportGenerator(cfg.App.Name)

	deps := console.RouterDeps{
		Manager:   manager,
		Catalog:   usecase.NewCatalogUseCase(backend.Products, manager),
		Orders:    usecase.NewOrderUseCase(backend.Orders, manager),
		Users:     usecase.NewUserUseCase(backend.Users, manager, manager),
		Store:     usecase.NewStoreUseCase(backend.Products, backend.Orders, manager),
		Dashboard: usecase.NewDashboardUseCase(backend, manager, log),
		Reports:   reports,
		PDF:       pdf,
		Log:       log,
	}

	app := &cli.App{
		Manager:  manager,
		Reports:  reports,
		PDF:      pdf,
		Interval: cfg.Reports.PollInterval(),
		Log:      log,
		Console: func(ctx context.Context) error {
			return serveConsole(ctx, cfg, deps, log)
		},
	}
	return app.Run(ctx, args)
}

// openSessionBackend almacén clave/valor según SESSION_DRIVER.
func openSessionBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.KeyValueStore, func(), error) {
	switch cfg.Session.Driver {
	case config.SessionDriverMemory:
		return storage.NewMemoryStore(), func() {}, nil
	case config.SessionDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rs := storage.NewRedisStore(client, cfg.Redis.Prefix)
		if err := rs.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Debug().Str("addr", cfg.Redis.Addr).Msg("sesión en redis")
		return rs, func() { _ = client.Close() }, nil
	default:
		fs, err := storage.NewFileStore(cfg.Session.Path, log)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("path", fs.Path()).Msg("sesión en archivo")
		return fs, func() {}, nil
	}
}

// serveConsole levanta la consola y la apaga de forma ordenada al cancelar ctx.
func serveConsole(ctx context.Context, cfg *config.Config, deps console.RouterDeps, log *logger.Logger) error {
	clog := log.Component("console")
	app := console.NewApp(cfg.App.Name, deps)

	errCh := make(chan error, 1)
	go func() {
		clog.Info().Str("addr", cfg.Console.Addr()).Msg("consola escuchando")
		errCh <- app.Listen(cfg.Console.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	clog.Info().Msg("señal de apagado recibida, cerrando consola...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		clog.Error().Err(err).Msg("apagado de la consola")
		return err
	}
	clog.Info().Msg("consola detenida")
	return nil
}
