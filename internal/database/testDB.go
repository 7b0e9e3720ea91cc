package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/sqlite"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "standards-board-backend/internal/model"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users
var (
	TestAdminUser  m.User
	TestApplicant1 m.User
	TestApplicant2 m.User
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		Constr: fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// NewMemoryDB opens a private in-memory SQLite database with the schema
// migrated and the test users seeded. Every call returns an isolated database.
func NewMemoryDB() (*DBinstanceStruct, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())

	db, err := Open(sqlite.Open(dsn), &DBConfig{Constr: dsn})
	if err != nil {
		return nil, err
	}

	raw, err := db.Raw()
	if err != nil {
		return nil, err
	}
	// a single connection keeps the shared-cache database alive and serializes writers
	raw.SetMaxOpenConns(1)

	if err := seedTestData(db); err != nil {
		return nil, err
	}
	return db, nil
}

// seedTestData inserts one admin and two applicants if no users exist yet.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	users := []m.User{
		{ID: "google-admin", Email: "admin@example.com", DisplayName: "Board Admin", Role: m.RoleAdmin},
		{ID: "google-applicant-1", Email: "asha@example.com", DisplayName: "Asha Raman", Role: m.RoleUser},
		{ID: "google-applicant-2", Email: "vikram@example.com", DisplayName: "Vikram Iyer", Role: m.RoleUser},
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	TestAdminUser = users[0]
	TestApplicant1 = users[1]
	TestApplicant2 = users[2]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	for id, dst := range map[string]*m.User{
		"google-admin":       &TestAdminUser,
		"google-applicant-1": &TestApplicant1,
		"google-applicant-2": &TestApplicant2,
	} {
		if err := db.First(dst, "id = ?", id).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetTestRedis starts a Redis test container and returns a teardown function and its redis:// URL.
func GetTestRedis() (func(context.Context, ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return container.Terminate, "", err
	}
	port, err := container.MappedPort(ctx, nat.Port("6379/tcp"))
	if err != nil {
		return container.Terminate, "", err
	}

	return container.Terminate, fmt.Sprintf("redis://%s:%s/0", host, port.Port()), nil
}
