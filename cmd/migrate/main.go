// migrate aplica ou desfaz o schema do banco.
//
// Uso: go run ./cmd/migrate [up|down|version|steps N|force N]
// Sem argumento executa up. A conexão vem das mesmas variáveis DB_* da API.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/barberpro/barber-analytics-api/internal/infrastructure/migration"
	"github.com/barberpro/barber-analytics-api/internal/infrastructure/postgres"
	"github.com/barberpro/barber-analytics-api/pkg/config"
	"github.com/barberpro/barber-analytics-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Carregar configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão a PostgreSQL")
	}
	defer pool.Close()

	m, err := migration.New(postgres.OpenDB(pool), cfg.DB.MigrationsSource, log.Component("migrate"))
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migrações")
	}
	defer m.Close()

	if err := run(m, cmd, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func run(m *migration.Migrator, cmd string, args []string) error {
	switch cmd {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("versão %d (dirty=%t)\n", v, dirty)
		return nil
	case "steps", "force":
		if len(args) == 0 {
			return fmt.Errorf("informe o número")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("número inválido %q", args[0])
		}
		if cmd == "steps" {
			return m.Steps(n)
		}
		return m.Force(n)
	default:
		return fmt.Errorf("comando desconhecido (use up, down, version, steps N ou force N)")
	}
}
