package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Article struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Slug        string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"size:255" json:"description"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	Tags        []Tag          `gorm:"many2many:article_tags" json:"-"`
	Images      []ArticleImage `gorm:"foreignKey:ArticleID" json:"images,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}

// TagNames flattens the tag association into the response tag list.
func (a *Article) TagNames() []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return names
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

type ArticleImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ArticleID   uuid.UUID `gorm:"type:uuid;not null;index" json:"article_id"`
	URL         string    `gorm:"type:text;not null" json:"url"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ArticleLike stores a single signed vote: +1 like, -1 dislike.
type ArticleLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_article_likes_user_article" json:"user_id"`
	ArticleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_article_likes_user_article" json:"article_id"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Rate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rates_user_article" json:"user_id"`
	ArticleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rates_user_article" json:"article_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type ArticleFavorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_article" json:"user_id"`
	ArticleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_article" json:"article_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type ArticleBookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_article" json:"user_id"`
	ArticleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_article" json:"article_id"`
	Article   Article   `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"article,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type ArticleReport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReaderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reports_reader_article" json:"reader_id"`
	ArticleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reports_reader_article" json:"article_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
