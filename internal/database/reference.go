package database

import (
	"birdlog/internal/models"

	"gorm.io/gorm"
)

// speciesCatalog is the read-only reference catalog. The application never
// mutates it; new entries are added here and picked up at the next startup.
var speciesCatalog = []models.Species{
	{Name: "House Crow", ScientificName: "Corvus splendens"},
	{Name: "Javan Myna", ScientificName: "Acridotheres javanicus"},
	{Name: "Rock Dove", ScientificName: "Columba livia"},
	{Name: "Asian Koel", ScientificName: "Eudynamys scolopaceus"},
	{Name: "Olive-backed Sunbird", ScientificName: "Cinnyris jugularis"},
	{Name: "Yellow-vented Bulbul", ScientificName: "Pycnonotus goiavier"},
	{Name: "Oriental Magpie-Robin", ScientificName: "Copsychus saularis"},
	{Name: "Eurasian Tree Sparrow", ScientificName: "Passer montanus"},
	{Name: "Collared Kingfisher", ScientificName: "Todiramphus chloris"},
	{Name: "White-bellied Sea Eagle", ScientificName: "Haliaeetus leucogaster"},
	{Name: "Spotted Dove", ScientificName: "Spilopelia chinensis"},
	{Name: "Common Tailorbird", ScientificName: "Orthotomus sutorius"},
	{Name: "Pink-necked Green Pigeon", ScientificName: "Treron vernans"},
	{Name: "Black-naped Oriole", ScientificName: "Oriolus chinensis"},
	{Name: "Zebra Dove", ScientificName: "Geopelia striata"},
}

// SeedSpecies inserts the species catalog if the table is empty. Idempotent
// across restarts.
func SeedSpecies(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Species{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	rows := make([]models.Species, len(speciesCatalog))
	copy(rows, speciesCatalog)
	return db.Create(&rows).Error
}
