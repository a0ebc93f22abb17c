package dto

type RateRequest struct {
	Rating int `json:"rating" binding:"required"`
}

type RatingResponse struct {
	Article       string  `json:"article"`
	AverageRating float64 `json:"average_rating"`
	RateCount     int64   `json:"rate_count"`
	YourRating    any     `json:"your_rating"`
}

type ReportRequest struct {
	Message string `json:"report_message" binding:"required"`
}

type ReportResponse struct {
	Article string `json:"article"`
	Reader  string `json:"reader"`
	Message string `json:"report_message"`
}
