package models

// Behaviour is a catalog entry describing something a bird was seen doing
// (e.g. "preening", "mobbing"). It has an independent lifecycle: entries can
// be deleted, and deletion removes their note associations.
type Behaviour struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// NoteBehaviour is the join row tying a note to a behaviour. The set of rows
// for a note is owned by the note: it is fully replaced on every edit and
// removed when either side is deleted.
type NoteBehaviour struct {
	NoteID      uint `gorm:"primaryKey" json:"note_id"`
	BehaviourID uint `gorm:"primaryKey" json:"behaviour_id"`
}

// TableName keeps the historical join table name.
func (NoteBehaviour) TableName() string {
	return "notes_behaviours"
}
