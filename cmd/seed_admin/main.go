// seed_admin crea la cuenta SUPER con alcance GLOBAL necesaria para la primera conexión.
//
// Uso: go run ./cmd/seed_admin
// Lee SEED_ADMIN_USERNAME, SEED_ADMIN_PASSWORD y SEED_ADMIN_NAME además de la configuración de base de datos.
// Si la cuenta ya existe no modifica nada.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Inventario-vtr/internal/application/catalog"
	"github.com/jhoicas/Inventario-vtr/internal/application/usecase"
	"github.com/jhoicas/Inventario-vtr/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-vtr/pkg/config"
	"github.com/jhoicas/Inventario-vtr/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Seed.Username == "" || cfg.Seed.Password == "" {
		fmt.Fprintln(os.Stderr, "SEED_ADMIN_USERNAME y SEED_ADMIN_PASSWORD son obligatorios")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	store := catalog.NewStore(postgres.NewSnapshotReader(pool), log)
	userUC := usecase.NewUserUseCase(postgres.NewUserRepository(pool), store, log)

	created, err := userUC.Bootstrap(ctx, cfg.Seed.Username, cfg.Seed.Password, cfg.Seed.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("crear cuenta inicial")
	}
	if !created {
		fmt.Printf("La cuenta %q ya existe, sin cambios\n", cfg.Seed.Username)
		return
	}
	fmt.Printf("Cuenta %q creada (SUPER, GLOBAL)\n", cfg.Seed.Username)
}
