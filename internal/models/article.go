package models

import "time"

// Article is an authored post identified by a unique, title-derived slug.
type Article struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Slug           string    `json:"slug" gorm:"uniqueIndex;type:varchar(255)"`
	Title          string    `json:"title" gorm:"type:varchar(255)"`
	Description    string    `json:"description" gorm:"type:varchar(500)"`
	Body           string    `json:"body" gorm:"type:text"`
	AuthorID       string    `json:"author_id" gorm:"type:varchar(36);index"`
	Author         User      `json:"author"`
	Tags           []Tag     `json:"tags" gorm:"many2many:article_tags"`
	FavoritedBy    []User    `json:"-" gorm:"many2many:article_favorites"`
	FavoritesCount int       `json:"favorites_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TagNames returns the names of the article's loaded tags.
func (a *Article) TagNames() []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return names
}

// IsFavoritedBy reports whether userID appears in the loaded FavoritedBy set.
func (a *Article) IsFavoritedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, u := range a.FavoritedBy {
		if u.ID == userID {
			return true
		}
	}
	return false
}
