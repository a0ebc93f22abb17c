package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID" json:"-"`
	Bio            string    `gorm:"size:255" json:"bio"`
	AvatarURL      string    `gorm:"type:text" json:"avatar"`
	Interests      string    `gorm:"size:50" json:"interests"`
	FavoriteQuote  string    `gorm:"size:100" json:"favorite_quote"`
	MailingAddress string    `gorm:"size:50" json:"mailing_address"`
	Website        string    `gorm:"size:255" json:"website"`
	Active         bool      `gorm:"default:true" json:"active"`
	EmailNotify    bool      `gorm:"default:true" json:"email_notify"`
	AppNotify      bool      `gorm:"default:false" json:"in_app_notify"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Follow is one edge of the self-referential following graph:
// follower follows followed.
type Follow struct {
	FollowerID uuid.UUID `gorm:"type:uuid;primaryKey" json:"follower_id"`
	FollowedID uuid.UUID `gorm:"type:uuid;primaryKey" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Slug      string    `gorm:"size:255" json:"slug"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
