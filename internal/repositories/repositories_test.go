package repositories

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mockmate/interview-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One named in-memory database per test: the shared cache keeps it alive
	// across the connections gorm pools, the name keeps tests isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.SavedResume{}, &models.InterviewRecord{}))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createTestUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hashed",
	}
	require.NoError(t, repo.Create(user))
	return user
}

func testRecord(userID uuid.UUID, score *float64) *models.InterviewRecord {
	return &models.InterviewRecord{
		ID:            uuid.New(),
		UserID:        userID,
		JobTitle:      "Backend Engineer",
		CompanyName:   "Acme",
		InterviewType: models.InterviewTypeTechnical,
		Difficulty:    "Moderate",
		Questions:     []string{"Q1?", "Q2?"},
		Answers:       []string{"A1", "A2"},
		OverallScore:  score,
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := createTestUser(t, repo, "alice@example.com")

	byEmail, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByEmail("ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_TouchLastLogin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := createTestUser(t, repo, "bob@example.com")
	require.Nil(t, user.LastLogin)

	require.NoError(t, repo.TouchLastLogin(user.ID))

	updated, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, updated.LastLogin)
}

func TestInterviewRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewInterviewRepository(db)

	user := createTestUser(t, users, "alice@example.com")
	record := testRecord(user.ID, floatPtr(7.5))
	require.NoError(t, repo.Create(record))

	loaded, err := repo.FindByIDForUser(record.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1?", "Q2?"}, loaded.Questions)
	assert.Equal(t, []string{"A1", "A2"}, loaded.Answers)
	require.NotNil(t, loaded.OverallScore)
	assert.Equal(t, 7.5, *loaded.OverallScore)
}

func TestInterviewRepository_OwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewInterviewRepository(db)

	owner := createTestUser(t, users, "owner@example.com")
	intruder := createTestUser(t, users, "intruder@example.com")

	record := testRecord(owner.ID, nil)
	require.NoError(t, repo.Create(record))

	// A foreign record looks exactly like a missing one.
	_, err := repo.FindByIDForUser(record.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.DeleteByIDForUser(record.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The owner still sees it.
	_, err = repo.FindByIDForUser(record.ID, owner.ID)
	assert.NoError(t, err)
}

func TestInterviewRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewInterviewRepository(db)

	user := createTestUser(t, users, "alice@example.com")
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(testRecord(user.ID, floatPtr(float64(i)))))
	}

	records, total, err := repo.ListByUser(user.ID, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, records, 3)

	rest, total, err := repo.ListByUser(user.ID, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rest, 2)
}

func TestInterviewRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewInterviewRepository(db)

	user := createTestUser(t, users, "alice@example.com")
	record := testRecord(user.ID, nil)
	require.NoError(t, repo.Create(record))

	require.NoError(t, repo.DeleteByIDForUser(record.ID, user.ID))

	_, err := repo.FindByIDForUser(record.ID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again reports not found.
	assert.ErrorIs(t, repo.DeleteByIDForUser(record.ID, user.ID), ErrNotFound)
}

func TestResumeRepository_SaveActiveDeactivatesPrevious(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewResumeRepository(db)

	user := createTestUser(t, users, "alice@example.com")

	first := &models.SavedResume{ID: uuid.New(), UserID: user.ID, ResumeText: "first resume"}
	require.NoError(t, repo.SaveActive(first))

	second := &models.SavedResume{ID: uuid.New(), UserID: user.ID, ResumeText: "second resume"}
	require.NoError(t, repo.SaveActive(second))

	active, err := repo.FindActive(user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, "second resume", active.ResumeText)

	var count int64
	require.NoError(t, db.Model(&models.SavedResume{}).
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResumeRepository_FindActivePerUser(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewResumeRepository(db)

	alice := createTestUser(t, users, "alice@example.com")
	bob := createTestUser(t, users, "bob@example.com")

	require.NoError(t, repo.SaveActive(&models.SavedResume{ID: uuid.New(), UserID: alice.ID, ResumeText: "alice resume"}))

	active, err := repo.FindActive(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice resume", active.ResumeText)

	_, err = repo.FindActive(bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
