package dto

import "time"

// ReviewRequest describes review payload.
type ReviewRequest struct {
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// ReviewUpdateRequest carries owner edits. Omitted fields keep current values.
type ReviewUpdateRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// ReviewResponse describes stored review.
type ReviewResponse struct {
	ID         int64     `json:"id"`
	User       int64     `json:"user"`
	Product    int64     `json:"product"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title,omitempty"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LikeResponse reports like state of a product.
type LikeResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}
