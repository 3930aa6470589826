// storectl tareas de operación fuera de la API: migraciones, alta de credenciales
// (no existe registro público) e importación de catálogos heredados en CSV.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	domaincatalog "github.com/jhoicas/tienda-api/internal/domain/catalog"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/store"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Herramientas de operación de tienda-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCommand(), newUserCommand(), newImportCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// env configuración, logger y store abiertos para un comando.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store
	sizes entity.SizeRange
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr}).Component("storectl")
	sizes := entity.SizeRange{Min: cfg.Catalog.SizeRangeMin, Max: cfg.Catalog.SizeRangeMax}
	st, err := store.Open(ctx, cfg.DB, domaincatalog.NewCodec(sizes, cfg.Catalog.LegacyDecode))
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: st, sizes: sizes}, nil
}
