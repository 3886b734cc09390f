package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "actualize-backend/internal/model"
	"actualize-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded records
var (
	TestAdmin      m.Admin
	TestCandidate1 m.Candidate
	TestCandidate2 m.Candidate
	TestContact    m.AdminContact
	TestCommunity  m.CommunityGroup

	// Published process with three rounds: form, hybrid, instruction
	TestProcess m.Process
	// Draft process candidates must not see
	TestDraftProcess m.Process

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"
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
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
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
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
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

// seedTestData inserts one admin, two candidates, an admin contact and two processes.
func seedTestData(db *DBinstanceStruct) error {
	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	TestAdmin = m.Admin{
		ID:       uuid.New(),
		Name:     "Seed Admin",
		Email:    "admin@example.com",
		Password: hashedPwd,
	}
	if err := db.Create(&TestAdmin).Error; err != nil {
		return err
	}

	candidates := []m.Candidate{
		{ID: uuid.New(), Name: "Alice Nguyen", Email: "alice@example.com", Phone: ptr("0100000001"), Password: hashedPwd},
		{ID: uuid.New(), Name: "Bob Somsak", Email: "bob@example.com", Phone: ptr("0100000002"), Password: hashedPwd},
	}
	if err := db.Create(&candidates).Error; err != nil {
		return err
	}
	TestCandidate1 = candidates[0]
	TestCandidate2 = candidates[1]

	TestContact = m.AdminContact{Name: "Hiring Desk", Email: ptr("hiring@example.com"), Phone: ptr("0200000000")}
	if err := db.Create(&TestContact).Error; err != nil {
		return err
	}

	TestCommunity = m.CommunityGroup{GroupLink: "https://chat.whatsapp.com/actualize-test"}
	if err := db.Create(&TestCommunity).Error; err != nil {
		return err
	}

	TestProcess = m.Process{
		ID:          uuid.New(),
		Title:       "Backend Engineer 2025",
		Description: "Screening, take-home and interview",
		Status:      m.ProcessStatusPublished,
		CreatedBy:   &TestAdmin.ID,
		WatchBeforeYouBegin: m.IntroVideo{
			Enabled:    true,
			VideoURL:   "https://videos.example.com/welcome.mp4",
			VideoTitle: "Welcome",
		},
		Rounds: []m.Round{
			{
				ID:    uuid.New(),
				Title: "Screening",
				Type:  m.RoundTypeForm,
				Order: 1,
				Fields: []m.Field{
					{ID: uuid.New(), Question: "Why this role?", SubType: m.FieldLongText, Required: true, Position: 1},
					{ID: uuid.New(), Question: "Preferred stack", SubType: m.FieldSingleChoice, Options: pq.StringArray{"Go", "Rust"}, Position: 2},
				},
			},
			{
				ID:          uuid.New(),
				Title:       "Take-home",
				Type:        m.RoundTypeHybrid,
				Order:       2,
				Instruction: "Build a small HTTP service",
				Fields: []m.Field{
					{ID: uuid.New(), Question: "Upload your solution", SubType: m.FieldFileUpload, Required: true, Position: 1},
					{ID: uuid.New(), Question: "Notes", SubType: m.FieldShortText, Position: 2},
				},
			},
			{
				ID:          uuid.New(),
				Title:       "Interview",
				Type:        m.RoundTypeInstruction,
				Order:       3,
				Instruction: "Book a slot with the team",
			},
		},
	}
	if err := db.Create(&TestProcess).Error; err != nil {
		return err
	}

	TestDraftProcess = m.Process{
		ID:     uuid.New(),
		Title:  "Unreleased role",
		Status: m.ProcessStatusDraft,
		Rounds: []m.Round{
			{ID: uuid.New(), Title: "Only round", Type: m.RoundTypeInstruction, Order: 1},
		},
	}
	return db.Create(&TestDraftProcess).Error
}

// ptr helper
func ptr[T any](v T) *T { return &v }
