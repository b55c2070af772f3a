// Package testutil provides test helpers including container management
// and test client utilities.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/charter/internal/config"
	"github.com/cory-johannsen/charter/internal/storage/postgres"
)

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "test"
	pgPassword = "test"
	pgDatabase = "test"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	RawPool   *pgxpool.Pool
	Config    config.DatabaseConfig
}

// NewPostgresContainer starts a PostgreSQL test container and returns
// a connected Pool. The container and pool are torn down with the test.
//
// Precondition: Docker must be available.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            mappedPort.Int(),
		User:            pgUser,
		Password:        pgPassword,
		Name:            pgDatabase,
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		t.Fatalf("connecting to test postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	return &PostgresContainer{
		container: container,
		Pool:      pool,
		RawPool:   pool.DB(),
		Config:    dbCfg,
	}
}

// testSchema mirrors the SQL under migrations/. Keeping a copy here lets
// tests build the schema without the migrate tool; update both together.
const testSchema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id            BIGSERIAL    PRIMARY KEY,
		username      VARCHAR(64)  NOT NULL UNIQUE,
		password_hash TEXT         NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'player',
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_accounts_username ON accounts (username);

	CREATE TABLE IF NOT EXISTS campaigns (
		id         BIGSERIAL    PRIMARY KEY,
		account_id BIGINT       NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		name       VARCHAR(64)  NOT NULL,
		scenario   VARCHAR(128) NOT NULL,
		turn       INTEGER      NOT NULL DEFAULT 1,
		state      JSONB        NOT NULL,
		created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		UNIQUE (account_id, name)
	);
	CREATE INDEX IF NOT EXISTS idx_campaigns_account ON campaigns (account_id);

	CREATE TABLE IF NOT EXISTS roll_audit (
		id          BIGSERIAL   PRIMARY KEY,
		campaign_id BIGINT      NOT NULL REFERENCES campaigns (id) ON DELETE CASCADE,
		turn        INTEGER     NOT NULL,
		action_type VARCHAR(64) NOT NULL,
		actor_name  VARCHAR(64) NOT NULL,
		faces       INTEGER[]   NOT NULL,
		final_face  INTEGER     NOT NULL,
		outcome     VARCHAR(32) NOT NULL,
		corrupt     BOOLEAN     NOT NULL DEFAULT FALSE,
		cost        INTEGER     NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_roll_audit_campaign ON roll_audit (campaign_id, created_at DESC);
`

// ApplyMigrations creates the accounts, campaigns, and roll_audit tables
// in the test database.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	if _, err := pc.RawPool.Exec(context.Background(), testSchema); err != nil {
		t.Fatalf("applying migrations: %v", err)
	}
}

// NewPool starts a migrated test database and returns its raw pool.
// The container is cleaned up with the test.
//
// Precondition: Docker must be available.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pc := NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return pc.RawPool
}

// DSN returns the connection string for the test database.
func (pc *PostgresContainer) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.Config.User, pc.Config.Password,
		pc.Config.Host, pc.Config.Port,
		pc.Config.Name, pc.Config.SSLMode,
	)
}
