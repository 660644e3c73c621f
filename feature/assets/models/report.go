package models

import "time"

// Report is one stored verification outcome.
// Only the verdict, counts and orphaned identifiers are kept; the asset sets
// themselves are never persisted.
type Report struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt            time.Time `gorm:"index" json:"created_at"`
	Source               string    `gorm:"size:16" json:"source"`
	Platform             string    `gorm:"size:16;index" json:"platform"`
	ExportPath           string    `gorm:"size:1024" json:"export_path"`
	EmbeddedManifestPath string    `gorm:"size:1024" json:"embedded_manifest_path"`
	Verdict              string    `gorm:"size:8;index" json:"verdict"`
	FullCount            int       `json:"full_count"`
	EmbeddedCount        int       `json:"embedded_count"`
	PlatformCount        int       `json:"platform_count"`
	CoveredCount         int       `json:"covered_count"`
	RedundantCount       int       `json:"redundant_count"`
	Orphaned             []string  `gorm:"serializer:json;type:text" json:"orphaned"`
}

// TableName overrides the table name used by Report.
func (Report) TableName() string {
	return "verification_reports"
}
