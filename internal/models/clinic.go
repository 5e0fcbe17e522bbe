package models

import (
	"gorm.io/gorm"
)

// Clinic represents a clinic location doctors are attached to
type Clinic struct {
	BaseModel
	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
}

// SeedClinics inserts the default clinic list if the table is empty.
func SeedClinics(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Clinic{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	clinics := []Clinic{
		{BaseModel: BaseModel{ID: "clinic1"}, Name: "City Medical Center", Address: "123 Main Street, Downtown"},
		{BaseModel: BaseModel{ID: "clinic2"}, Name: "General Hospital", Address: "456 Park Avenue, North District"},
		{BaseModel: BaseModel{ID: "clinic3"}, Name: "Health Plus Clinic", Address: "789 Oak Road, South Area"},
		{BaseModel: BaseModel{ID: "clinic4"}, Name: "Family Care Center", Address: "321 Elm Street, East Side"},
	}
	return db.Create(&clinics).Error
}
