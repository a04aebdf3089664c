package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name      string `gorm:"not null;unique" json:"name"`
	Slug      string `gorm:"not null;unique" json:"slug"`
	IsDeleted bool   `gorm:"default:false"`
}
