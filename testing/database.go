// Package testing provides throwaway PostgreSQL databases for integration tests
package testing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Luisr26/ExpertSoft/migrations"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	PostgresImage    = "postgres:16-alpine"
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDB       = "postgres"
)

// ErrUnavailable is returned when neither TEST_DATABASE_URL nor a Docker
// daemon can provide a PostgreSQL server. Callers skip the test on it.
var ErrUnavailable = errors.New("no test database available")

// TestDB represents a test database instance
type TestDB struct {
	DB       *gorm.DB
	Name     string
	adminURL string
}

var (
	serverOnce sync.Once
	serverURL  string
	serverErr  error
)

// adminConnString returns the connection string of the server hosting the
// test databases. One container is started per test binary; the reaper
// removes it when the process exits.
func adminConnString(ctx context.Context) (string, error) {
	serverOnce.Do(func() {
		if override := os.Getenv("TEST_DATABASE_URL"); override != "" {
			serverURL = override
			return
		}
		serverURL, serverErr = startContainer(ctx)
	})
	return serverURL, serverErr
}

func startContainer(ctx context.Context) (connStr string, err error) {
	// testcontainers panics on some hosts without a Docker socket
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnavailable, r)
		}
	}()

	ctr, err := tcpostgres.Run(ctx,
		PostgresImage,
		tcpostgres.WithUsername(PostgresUser),
		tcpostgres.WithPassword(PostgresPassword),
		tcpostgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return "", fmt.Errorf("%w: start postgres: %v", ErrUnavailable, err)
	}

	connStr, err = ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return "", fmt.Errorf("get connection string: %w", err)
	}
	return connStr, nil
}

// withDatabase swaps the database name of a postgres:// URL
func withDatabase(connStr, name string) (string, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return "", fmt.Errorf("parse connection string: %w", err)
	}
	u.Path = "/" + name
	return u.String(), nil
}

// SetupTestDB creates a new test database with a unique name and applies the schema
func SetupTestDB(ctx context.Context) (*TestDB, error) {
	adminURL, err := adminConnString(ctx)
	if err != nil {
		return nil, err
	}

	admin, err := sql.Open("postgres", adminURL)
	if err != nil {
		return nil, fmt.Errorf("open admin connection: %w", err)
	}
	defer admin.Close()

	if err := admin.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	name := "expertsoft_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return nil, fmt.Errorf("failed to create test database %s: %w", name, err)
	}

	tdb := &TestDB{Name: name, adminURL: adminURL}

	dsn, err := withDatabase(adminURL, name)
	if err != nil {
		_ = tdb.dropDatabase(ctx)
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = tdb.dropDatabase(ctx)
		return nil, fmt.Errorf("failed to connect to test database %s: %w", name, err)
	}
	tdb.DB = db

	if err := migrations.Apply(ctx, db); err != nil {
		_ = tdb.Teardown()
		return nil, fmt.Errorf("failed to run migrations on test database %s: %w", name, err)
	}
	return tdb, nil
}

// Teardown closes the pool and drops the test database
func (tdb *TestDB) Teardown() error {
	if tdb.DB != nil {
		if sqlDB, err := tdb.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return tdb.dropDatabase(ctx)
}

func (tdb *TestDB) dropDatabase(ctx context.Context) error {
	admin, err := sql.Open("postgres", tdb.adminURL)
	if err != nil {
		return err
	}
	defer admin.Close()

	// Force disconnect all connections to the test database
	if _, err := admin.ExecContext(ctx,
		"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()",
		tdb.Name,
	); err != nil {
		log.Printf("Warning: failed to terminate connections to test database %s: %v", tdb.Name, err)
	}

	if _, err := admin.ExecContext(ctx, "DROP DATABASE IF EXISTS "+pq.QuoteIdentifier(tdb.Name)); err != nil {
		return fmt.Errorf("failed to drop test database %s: %w", tdb.Name, err)
	}
	return nil
}

// ClearAllTables removes all rows and resets the id sequences
func (tdb *TestDB) ClearAllTables() error {
	return tdb.DB.Exec("TRUNCATE TABLE transactions, invoices, clients, platforms RESTART IDENTITY CASCADE").Error
}

// Count returns the number of rows in table
func (tdb *TestDB) Count(table string) (int64, error) {
	var n int64
	err := tdb.DB.Table(table).Count(&n).Error
	return n, err
}

// TestWithDB sets up a test database, runs testFunc and drops the database
func TestWithDB(ctx context.Context, testFunc func(*TestDB) error) error {
	testDB, err := SetupTestDB(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cleanupErr := testDB.Teardown(); cleanupErr != nil {
			log.Printf("Warning: failed to cleanup test database: %v", cleanupErr)
		}
	}()

	return testFunc(testDB)
}
