package models

// Species is the read-only reference catalog of bird species. Rows are
// seeded at migration time and never mutated by the application.
type Species struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	ScientificName string `gorm:"not null" json:"scientific_name"`
}

// TableName overrides the pluralized default ("species" is already plural).
func (Species) TableName() string {
	return "species"
}
