package models

import "time"

// User represents a registered account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(50)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Bio       string    `json:"bio" gorm:"type:varchar(1000)"`
	Image     string    `json:"image" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Follow is a directed edge: the follower follows the following user.
// The composite primary key makes the relation unique at the storage level,
// so concurrent duplicate follows collapse into a single row.
type Follow struct {
	FollowerID  string    `json:"follower_id" gorm:"primaryKey;type:varchar(36)"`
	FollowingID string    `json:"following_id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt   time.Time `json:"created_at"`
}
