package testing

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultPGImage is the server the products schema is tested against
const DefaultPGImage = "postgres:17.5"

type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

// PGConfig describes the test database. Image falls back to DefaultPGImage.
type PGConfig struct {
	Image    string
	Database string
	Username string
	Password string
}

func NewPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	return runPGContainer(ctx, cfg)
}

// NewPGContainerWithCleanup starts a products database and terminates it when tb finishes
func NewPGContainerWithCleanup(ctx context.Context, tb testing.TB) *PGContainer {
	tb.Helper()

	c, err := runPGContainer(ctx, PGConfig{
		Database: "storefront_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		tb.Fatalf("failed to create postgres container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c.Container); err != nil {
			tb.Logf("failed to terminate postgres container: %v", err)
		}
	})

	return c
}

// MigrationFiles lists the up migrations under db/migrations in apply order
func MigrationFiles() ([]string, error) {
	_, b, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(b), "..", "..", "db", "migrations")

	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations in %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no up migrations found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

func runPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	migrations, err := MigrationFiles()
	if err != nil {
		return nil, err
	}

	image := cfg.Image
	if image == "" {
		image = DefaultPGImage
	}

	pgContainer, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		postgres.WithInitScripts(migrations...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container from %s: %w", image, err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(pgContainer)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PGContainer{
		Container:  pgContainer,
		ConnString: connStr,
	}, nil
}
