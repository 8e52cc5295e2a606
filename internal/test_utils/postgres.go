package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/timebudget/timebudget/internal/config"
	"github.com/timebudget/timebudget/internal/database"
)

const snapshotName = "postgres-test-snapshot"

// TestDB is a migrated Postgres container shared by the tests of one package.
// Every pool opened through Open is closed and the database restored to the
// migrated snapshot when the test finishes.
type TestDB struct {
	container *postgres.PostgresContainer
	cfg       config.Database
}

func preparePostgresContainer(ctx context.Context) (container *postgres.PostgresContainer, err error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %v", err)
	}

	// testcontainers panics on some hosts without a container runtime
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("container runtime unavailable: %v", r)
		}
	}()

	return postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase("timebudget"),
		postgres.WithUsername("test_timebudget"),
		postgres.WithPassword("test_timebudget"),
		postgres.BasicWaitStrategies(),
	)
}

// StartPostgres starts a Postgres container, applies all migrations and snapshots the result.
// It returns an error when no container runtime is available so callers can skip.
func StartPostgres() (*TestDB, error) {
	ctx := context.Background()

	container, err := preparePostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, err
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:     host,
		Port:     port.Int(),
		User:     "test_timebudget",
		Pass:     "test_timebudget",
		Name:     "timebudget",
		Schema:   "timebudget",
		MaxConns: 10,
	}

	if err := database.Migrate(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	if err := container.Snapshot(ctx, postgres.WithSnapshotName(snapshotName)); err != nil {
		return nil, fmt.Errorf("failed to snapshot postgres container: %w", err)
	}

	return &TestDB{container: container, cfg: cfg}, nil
}

// MaybeStartPostgres is the TestMain entry point: it returns nil, after logging why, when the
// container cannot be started, which makes Open skip every database test.
func MaybeStartPostgres() *TestDB {
	db, err := StartPostgres()
	if err != nil {
		log.Warnf("database tests will be skipped: %v", err)
		return nil
	}
	return db
}

// Open returns a pool to the migrated database, or skips the test when no database is available.
func (d *TestDB) Open(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if d == nil {
		t.Skip("no container runtime available")
	}
	ctx := context.Background()
	pool, err := database.Open(ctx, d.cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Close()
		require.NoError(t, d.container.Restore(ctx, postgres.WithSnapshotName(snapshotName)))
	})
	return pool
}

func (d *TestDB) Terminate() {
	if d == nil {
		return
	}
	if err := testcontainers.TerminateContainer(d.container); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
}

// findProjectRoot walks up from the working directory to the directory holding go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
