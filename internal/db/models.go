package db

import (
	"time"

	"gorm.io/datatypes"
)

type Drawing struct {
	ID        uint   `gorm:"primaryKey"`
	Community string `gorm:"size:64;not null;index:idx_drawings_community_name"`
	Name      string `gorm:"size:128;not null;index:idx_drawings_community_name"`
	State     string `gorm:"size:32;not null"`
	Deadline  *time.Time
	Winner    int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Entries   []Entry
	Events    []Event
}

type Entry struct {
	ID            uint `gorm:"primaryKey"`
	DrawingID     uint `gorm:"index;not null;uniqueIndex:idx_entries_drawing_number"`
	EntrantNumber int  `gorm:"not null;uniqueIndex:idx_entries_drawing_number"`
	Eliminated    bool `gorm:"not null;default:false"`
	EliminatedAt  *time.Time
	EliminatedBy  string    `gorm:"size:64"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
	Users         []EntryUser
}

// EntryUser binds a chat user to an entry; a team entry holds several rows.
type EntryUser struct {
	EntryID uint   `gorm:"primaryKey;autoIncrement:false"`
	UserID  string `gorm:"primaryKey;size:64"`
}

type AdminRole struct {
	Community string    `gorm:"primaryKey;size:64"`
	RoleID    string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	Community string         `gorm:"size:64;not null;index"`
	DrawingID *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
