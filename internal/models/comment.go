package models

import "time"

// Comment belongs to a single article and is removed together with it.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Body      string    `json:"body" gorm:"type:text"`
	ArticleID string    `json:"article_id" gorm:"type:varchar(36);index"`
	Article   Article   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
