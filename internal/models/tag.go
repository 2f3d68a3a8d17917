package models

import "time"

// Tag is created implicitly the first time an article uses its name.
// Tags are never deleted, even when no article references them anymore.
type Tag struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
}
