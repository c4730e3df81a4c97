// Package seed populates the database with demo users and sighting records.
// Intended for development environments only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"birdlog/internal/auth"
	"birdlog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DemoPassword is assigned to every seeded account.
const DemoPassword = "password123"

var flockTypes = []string{
	"solo", "pair", "small flock", "large flock", "colony", "mixed flock",
}

var behaviourCatalog = []string{
	"Soaring", "Calling", "Foraging", "Preening", "Nesting",
	"Mobbing", "Courtship display", "Dust bathing", "Roosting",
}

// Seeder builds demo entities and persists them.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes seedable data. The species catalog is reference data and
// is left in place.
func (s *Seeder) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM notes_behaviours",
		"DELETE FROM notes",
		"DELETE FROM behaviours",
		"DELETE FROM users",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("clearing data: %w", err)
		}
	}
	log.Println("cleared existing demo data")
	return nil
}

// SeedBehaviours inserts the behaviour catalog, skipping names that already
// exist.
func (s *Seeder) SeedBehaviours() ([]models.Behaviour, error) {
	behaviours := make([]models.Behaviour, 0, len(behaviourCatalog))
	for _, name := range behaviourCatalog {
		b := models.Behaviour{Name: name}
		if err := s.db.Where("name = ?", name).FirstOrCreate(&b).Error; err != nil {
			return nil, fmt.Errorf("seeding behaviour %q: %w", name, err)
		}
		behaviours = append(behaviours, b)
	}
	return behaviours, nil
}

// SeedUsers creates n demo accounts, all sharing DemoPassword.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	credential, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing demo password: %w", err)
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Email:    fmt.Sprintf("%s%d@%s", gofakeit.Username(), i, gofakeit.DomainName()),
			Password: credential,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d demo users", len(users))
	return users, nil
}

// SeedNotes creates n sighting records spread over the past maxDays days,
// attributed to random seeded users with random species and behaviour sets.
func (s *Seeder) SeedNotes(users []models.User, behaviours []models.Behaviour, n, maxDays int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to attribute records to")
	}
	if maxDays <= 0 {
		maxDays = 90
	}

	var species []models.Species
	if err := s.db.Find(&species).Error; err != nil {
		return fmt.Errorf("loading species catalog: %w", err)
	}

	for i := 0; i < n; i++ {
		owner := users[s.rng.Intn(len(users))]

		created := time.Now().UTC().
			Add(-time.Duration(s.rng.Intn(maxDays*24)) * time.Hour).
			Add(-time.Duration(s.rng.Intn(60)) * time.Minute)
		observed := created.Add(-time.Duration(s.rng.Intn(6)) * time.Hour)

		description := gofakeit.Sentence(6 + s.rng.Intn(12))
		obsDate, obsTime := models.SplitUTC(observed)
		createdDate, createdTime := models.SplitUTC(created)

		note := models.Note{
			CreatedDate:     createdDate,
			CreatedTime:     createdTime,
			LastUpdatedDate: createdDate,
			LastUpdatedTime: createdTime,
			ObservationDate: obsDate,
			ObservationTime: obsTime,
			DurationHour:    s.rng.Intn(3),
			DurationMinute:  s.rng.Intn(60),
			DurationSecond:  s.rng.Intn(60),
			NumberOfBirds:   1 + s.rng.Intn(40),
			FlockType:       flockTypes[s.rng.Intn(len(flockTypes))],
			Behaviour:       description,
			Summary:         models.Summarize(description),
			CreatedUserID:   owner.ID,
		}
		if len(species) > 0 && s.rng.Intn(10) > 0 {
			id := species[s.rng.Intn(len(species))].ID
			note.SpeciesID = &id
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&note).Error; err != nil {
				return err
			}
			for _, b := range pickBehaviours(s.rng, behaviours) {
				join := models.NoteBehaviour{NoteID: note.ID, BehaviourID: b.ID}
				if err := tx.Create(&join).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("creating record: %w", err)
		}
	}

	log.Printf("created %d sighting records", n)
	return nil
}

// pickBehaviours selects up to three distinct behaviours, sometimes none.
func pickBehaviours(rng *rand.Rand, behaviours []models.Behaviour) []models.Behaviour {
	if len(behaviours) == 0 {
		return nil
	}
	count := rng.Intn(4)
	if count > len(behaviours) {
		count = len(behaviours)
	}
	picked := make([]models.Behaviour, 0, count)
	for _, i := range rng.Perm(len(behaviours))[:count] {
		picked = append(picked, behaviours[i])
	}
	return picked
}
