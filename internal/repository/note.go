package repository

import (
	"context"
	"errors"
	"time"

	"birdlog/internal/models"

	"gorm.io/gorm"
)

// Sentinel errors distinguishing the internal states of a failed lookup.
// ErrUserNotFound and ErrNoNotes are deliberately rendered identically to
// callers; the distinction only exists server-side.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrUserNotFound = errors.New("user does not exist")
	ErrNoNotes      = errors.New("user has no notes")
)

// NoteRepository defines the interface for sighting record operations.
// Compound writes (record plus its behaviour set) are a single transaction;
// a partial failure can never leave orphaned or missing associations.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note, behaviourIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Note, error)
	Update(ctx context.Context, note *models.Note, behaviourIDs []uint, replaceBehaviours bool) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, sortKey string) ([]models.NoteListRow, string, error)
	ListByUser(ctx context.Context, userID uint) ([]models.NoteListRow, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// listColumns is the SELECT list shared by List and ListByUser. Stored
// date/time columns are UTC; conversion to viewer-local time happens at the
// presentation boundary, never here.
const listColumns = `notes.id, notes.created_date, notes.created_time, notes.summary,
	notes.flock_type, notes.number_of_birds, notes.created_user_id,
	COALESCE(species.name, '') AS species_name,
	COALESCE(species.scientific_name, '') AS scientific_name,
	users.email`

func (r *noteRepository) Create(ctx context.Context, note *models.Note, behaviourIDs []uint) error {
	now := time.Now()
	note.Stamp(now)
	note.Summary = models.Summarize(note.Behaviour)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Behaviours", "Species", "User").Create(note).Error; err != nil {
			return err
		}
		return replaceNoteBehaviours(tx, note.ID, behaviourIDs)
	})
}

func (r *noteRepository) GetByID(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).
		Preload("Species").
		Preload("Behaviours").
		Preload("User").
		First(&note, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *models.Note, behaviourIDs []uint, replaceBehaviours bool) error {
	note.Touch(time.Now())
	note.Summary = models.Summarize(note.Behaviour)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Behaviours", "Species", "User", "CreatedUserID").Save(note).Error; err != nil {
			return err
		}
		if !replaceBehaviours {
			return nil
		}
		return replaceNoteBehaviours(tx, note.ID, behaviourIDs)
	})
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&models.NoteBehaviour{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Note{}, id).Error
	})
}

func (r *noteRepository) List(ctx context.Context, sortKey string) ([]models.NoteListRow, string, error) {
	clause, resolvedKey := ResolveSort(sortKey)

	var rows []models.NoteListRow
	err := r.db.WithContext(ctx).
		Table("notes").
		Select(listColumns).
		Joins("LEFT JOIN species ON species.id = notes.species_id").
		Joins("JOIN users ON users.id = notes.created_user_id").
		Order(clause).
		Scan(&rows).Error
	if err != nil {
		return nil, resolvedKey, err
	}
	return rows, resolvedKey, nil
}

func (r *noteRepository) ListByUser(ctx context.Context, userID uint) ([]models.NoteListRow, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrUserNotFound
	}

	var rows []models.NoteListRow
	err := r.db.WithContext(ctx).
		Table("notes").
		Select(listColumns).
		Joins("LEFT JOIN species ON species.id = notes.species_id").
		Joins("JOIN users ON users.id = notes.created_user_id").
		Where("notes.created_user_id = ?", userID).
		Order("notes.created_date DESC, notes.created_time DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoNotes
	}
	return rows, nil
}

// replaceNoteBehaviours swaps the full association set for a note:
// delete-all then insert-all, inside the caller's transaction. Clearing an
// already-empty set is a no-op, not an error.
func replaceNoteBehaviours(tx *gorm.DB, noteID uint, behaviourIDs []uint) error {
	if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteBehaviour{}).Error; err != nil {
		return err
	}
	if len(behaviourIDs) == 0 {
		return nil
	}

	rows := make([]models.NoteBehaviour, 0, len(behaviourIDs))
	seen := make(map[uint]struct{}, len(behaviourIDs))
	for _, id := range behaviourIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, models.NoteBehaviour{NoteID: noteID, BehaviourID: id})
	}
	return tx.Create(&rows).Error
}
