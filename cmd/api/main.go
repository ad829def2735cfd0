package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	"github.com/jhoicas/Inventario-vtr/internal/application/auth"
	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/application/checklist"
	"github.com/jhoicas/Inventario-vtr/internal/application/report"
	"github.com/jhoicas/Inventario-vtr/internal/application/usecase"
	"github.com/jhoicas/Inventario-vtr/internal/domain/readiness"
	infrapdf "github.com/jhoicas/Inventario-vtr/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-vtr/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Inventario-vtr/internal/infrastructure/redis"
	infraxlsx "github.com/jhoicas/Inventario-vtr/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Inventario-vtr/internal/interfaces/http"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
	"github.com/jhoicas/Inventario-vtr/pkg/config"
	"github.com/jhoicas/Inventario-vtr/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	cal, err := newCalendar(cfg.Readiness)
	if err != nil {
		log.Fatal().Err(err).Msg("calendario de prontitud")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	storeOpts := []catalog.Option{}
	if tag, err := language.Parse(cfg.App.Locale); err == nil {
		storeOpts = append(storeOpts, catalog.WithLanguage(tag))
	} else {
		log.Warn().Str("locale", cfg.App.Locale).Msg("locale inválido, se usa el orden por defecto")
	}

	// Redis opcional: último snapshot válido para arrancar sin base de datos.
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer client.Close()
			storeOpts = append(storeOpts, catalog.WithCache(infraredis.NewSnapshotCache(client, cfg.Redis.SnapshotKey, 0)))
		}
	}

	store := catalog.NewStore(postgres.NewSnapshotReader(pool), log.Component("catalog"), storeOpts...)
	if err := store.Refresh(ctx); err != nil {
		// El servicio arranca igual: con caché (stale) o vacío hasta el próximo refresh.
		log.Error().Err(err).Msg("carga inicial de datos")
	}

	txRunner := postgres.NewTxRunner(pool)
	checklistSvc := checklist.NewService(cal, store, txRunner, log)
	go checklistSvc.RunJanitor(ctx, cfg.Session.TTL, cfg.Session.JanitorTick)

	userRepo := postgres.NewUserRepository(pool)
	orgUC := usecase.NewOrgUseCase(postgres.NewOrgRepository(pool), userRepo, store, log)
	vehicleUC := usecase.NewVehicleUseCase(postgres.NewVehicleRepository(pool), store, log)
	userUC := usecase.NewUserUseCase(userRepo, store, log, checklistSvc)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log, checklistSvc)

	// PDF de conferencia y planilla de exportación
	reportUC := report.NewReportUseCase(store,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Org),
		infraxlsx.NewChecksSheet(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario VTR API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		OrgUC:     orgUC,
		VehicleUC: vehicleUC,
		UserUC:    userUC,
		ReportUC:  reportUC,
		Checklist: checklistSvc,
		Catalog:   store,
		Calendar:  cal,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Int("open_sessions", checklistSvc.Open()).Msg("aplicación detenida")
}

// newCalendar arma el calendario a partir de la configuración ya validada.
func newCalendar(rc config.ReadinessConfig) (*readiness.Calendar, error) {
	epoch, err := civil.Parse(rc.Epoch)
	if err != nil {
		return nil, err
	}
	loc := time.Local
	if rc.Timezone != "" {
		if loc, err = time.LoadLocation(rc.Timezone); err != nil {
			return nil, err
		}
	}
	var states [readiness.StateCount]string
	copy(states[:], rc.States)
	return readiness.New(readiness.Config{
		Epoch:    epoch,
		Cutoff:   rc.Cutoff,
		States:   states,
		Location: loc,
	})
}
