package seed

import (
	"testing"

	"birdlog/internal/auth"
	"birdlog/internal/database"
	"birdlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedUsers(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(5)
	require.NoError(t, err)
	require.Len(t, users, 5)

	// Every account can log in with the shared demo password.
	for _, u := range users {
		assert.True(t, auth.CheckPassword(u.Password, DemoPassword))
		assert.NotEmpty(t, u.Email)
	}
}

func TestSeedBehaviours_Idempotent(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	first, err := s.SeedBehaviours()
	require.NoError(t, err)
	second, err := s.SeedBehaviours()
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))

	var count int64
	require.NoError(t, db.Model(&models.Behaviour{}).Count(&count).Error)
	assert.Equal(t, int64(len(first)), count)
}

func TestSeedNotes(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(3)
	require.NoError(t, err)
	behaviours, err := s.SeedBehaviours()
	require.NoError(t, err)

	require.NoError(t, s.SeedNotes(users, behaviours, 20, 30))

	var notes []models.Note
	require.NoError(t, db.Find(&notes).Error)
	require.Len(t, notes, 20)
	for _, n := range notes {
		assert.NotZero(t, n.CreatedUserID)
		assert.NotEmpty(t, n.ObservationDate)
		assert.NotEmpty(t, n.Summary)
		assert.LessOrEqual(t, len(n.Summary), models.SummaryMaxLen+len("..."))
	}
}

func TestSeedNotes_NoUsers(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	err := s.SeedNotes(nil, nil, 5, 30)
	assert.Error(t, err)
}

func TestClearAll(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(2)
	require.NoError(t, err)
	behaviours, err := s.SeedBehaviours()
	require.NoError(t, err)
	require.NoError(t, s.SeedNotes(users, behaviours, 5, 10))

	require.NoError(t, s.ClearAll())

	var userCount, noteCount, speciesCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Note{}).Count(&noteCount).Error)
	require.NoError(t, db.Model(&models.Species{}).Count(&speciesCount).Error)
	assert.Zero(t, userCount)
	assert.Zero(t, noteCount)
	// Reference data survives a clear.
	assert.Positive(t, speciesCount)
}
