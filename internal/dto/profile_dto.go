package dto

import "time"

type CreateProfileRequest struct {
	Bio            string `json:"bio" binding:"required,max=255"`
	Interests      string `json:"interests" binding:"max=50"`
	FavoriteQuote  string `json:"favorite_quote" binding:"max=100"`
	MailingAddress string `json:"mailing_address" binding:"max=50"`
	Website        string `json:"website" binding:"omitempty,url"`
	Avatar         string `json:"avatar"`
}

type UpdateProfileRequest struct {
	Bio            *string `json:"bio" binding:"omitempty,max=255"`
	Interests      *string `json:"interests" binding:"omitempty,max=50"`
	FavoriteQuote  *string `json:"favorite_quote" binding:"omitempty,max=100"`
	MailingAddress *string `json:"mailing_address" binding:"omitempty,max=50"`
	Website        *string `json:"website" binding:"omitempty,url"`
	Avatar         *string `json:"avatar"`
}

type ProfileResponse struct {
	Username       string    `json:"username"`
	Bio            string    `json:"bio"`
	Avatar         string    `json:"avatar"`
	Interests      string    `json:"interests"`
	FavoriteQuote  string    `json:"favorite_quote"`
	MailingAddress string    `json:"mailing_address"`
	Website        string    `json:"website"`
	Active         bool      `json:"active"`
	EmailNotify    bool      `json:"email_notify"`
	AppNotify      bool      `json:"in_app_notify"`
	CreatedAt      time.Time `json:"created_at"`
}
