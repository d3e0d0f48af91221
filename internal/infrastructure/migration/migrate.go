// Package migration aplica o schema do banco com golang-migrate.
package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"

	"github.com/barberpro/barber-analytics-api/migrations"
)

// Migrator envolve uma instância do golang-migrate.
type Migrator struct {
	migrate *migrate.Migrate
	log     zerolog.Logger
}

// New cria o Migrator sobre db. source vazio usa as migrações embutidas no binário;
// caso contrário é uma URL do golang-migrate (ex.: file://migrations).
func New(db *sql.DB, source string, log zerolog.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	var m *migrate.Migrate
	if source == "" {
		src, err := iofs.New(migrations.FS, ".")
		if err != nil {
			return nil, fmt.Errorf("embedded migrations: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
		if err != nil {
			return nil, fmt.Errorf("migrate instance: %w", err)
		}
	} else {
		m, err = migrate.NewWithDatabaseInstance(source, "postgres", driver)
		if err != nil {
			return nil, fmt.Errorf("migrate instance: %w", err)
		}
	}
	return &Migrator{migrate: m, log: log}, nil
}

// Up aplica todas as migrações pendentes.
func (m *Migrator) Up() error {
	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info().Msg("schema já atualizado")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up: %w", err)
	}
	version, dirty, _ := m.Version()
	m.log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrações aplicadas")
	return nil
}

// Down desfaz todas as migrações.
func (m *Migrator) Down() error {
	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info().Msg("nenhuma migração para desfazer")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down: %w", err)
	}
	m.log.Info().Msg("migrações desfeitas")
	return nil
}

// Steps aplica n migrações (positivo sobe, negativo desce).
func (m *Migrator) Steps(n int) error {
	err := m.migrate.Steps(n)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration steps %d: %w", n, err)
	}
	version, dirty, _ := m.Version()
	m.log.Info().Int("steps", n).Uint("version", version).Bool("dirty", dirty).Msg("migração por passos concluída")
	return nil
}

// Version devolve a versão atual; banco sem migrações devolve 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return version, dirty, nil
}

// Force grava a versão sem executar SQL (recuperação de estado dirty).
func (m *Migrator) Force(version int) error {
	m.log.Warn().Int("version", version).Msg("forçando versão de migração")
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("migration force %d: %w", version, err)
	}
	return nil
}

// Close libera a fonte e a conexão do golang-migrate.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()
	return errors.Join(srcErr, dbErr)
}
