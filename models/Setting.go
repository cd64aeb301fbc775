package models

import "time"

// Setting is a single persisted key/value pair. The dashboard keeps exactly two
// rows: the serialized settings record and the raw notes text.
type Setting struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// Keys for the rows the dashboard reads and writes.
const (
	SettingKeySettings = "settings"
	SettingKeyNotes    = "notes"
)
