package models

import "gorm.io/gorm"

// MediaAsset is the ingestion record produced by the asset store when a
// creator uploads a file. Video lessons reference assets by PublicID.
type MediaAsset struct {
	gorm.Model
	PublicID        string `gorm:"uniqueIndex;not null" json:"public_id"`
	URL             string `gorm:"not null" json:"url"`
	Format          string `json:"format"`
	SizeBytes       int64  `json:"size_bytes"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	ResourceKind    string `gorm:"default:'raw'" json:"resource_kind"` // video, image, raw
	UploadedBy      uint   `gorm:"index" json:"uploaded_by"`
	IsDeleted       bool   `gorm:"default:false"`
}
