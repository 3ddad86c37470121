package dto

import "time"

// ProductRequest describes product create and update payload.
type ProductRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Images       []string `json:"images"`
	Category     string   `json:"category"`
	Stock        int      `json:"stock"`
	Features     []string `json:"features"`
	Tags         []string `json:"tags"`
	Discount     int      `json:"discount"`
	IsBestSeller bool     `json:"isBestSeller"`
	IsNew        bool     `json:"isNew"`
}

// RatingResponse aggregates approved reviews.
type RatingResponse struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// ProductResponse describes catalog entry.
type ProductResponse struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	FinalPrice   float64        `json:"finalPrice"`
	Images       []string       `json:"images"`
	Category     string         `json:"category"`
	Stock        int            `json:"stock"`
	SalesCount   int            `json:"salesCount"`
	Rating       RatingResponse `json:"rating"`
	Features     []string       `json:"features"`
	Tags         []string       `json:"tags"`
	Discount     int            `json:"discount"`
	IsBestSeller bool           `json:"isBestSeller"`
	IsNew        bool           `json:"isNew"`
	CreatedAt    time.Time      `json:"createdAt"`
}
