// provision crea los saldos en cero que falten para cada par (bar, producto activo).
// Es idempotente: los saldos existentes no se tocan.
//
// Uso: go run ./cmd/provision [--dry-run]
// Con --dry-run solo informa cuántos saldos faltan.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/barstock-api/internal/application/inventory"
	"github.com/jhoicas/barstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/barstock-api/pkg/config"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "solo contar los saldos faltantes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("provision")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	p := inventory.NewProvisioner(postgres.NewBalanceRepository(pool))

	missing, err := p.Missing(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("contar saldos faltantes")
	}
	if *dryRun {
		fmt.Printf("%d saldos faltantes (dry-run, nada creado)\n", missing)
		return
	}

	created, err := p.All(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("crear saldos faltantes")
	}
	log.Info().Int64("missing", missing).Int64("created", created).Msg("aprovisionamiento terminado")
	fmt.Printf("%d saldos creados\n", created)
}
