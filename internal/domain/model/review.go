package model

import (
	"math"
	"time"
)

// Review is a user opinion about a product. Only approved reviews count towards rating.
type Review struct {
	ID         int64
	UserID     int64
	ProductID  int64
	Rating     int
	Title      string
	Comment    string
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReviewStatus selects reviews by moderation state. Empty value matches all.
type ReviewStatus string

const (
	ReviewStatusAny      ReviewStatus = ""
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
)

// Valid reports whether status is known.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusAny, ReviewStatusPending, ReviewStatusApproved:
		return true
	}
	return false
}

// Matches reports whether review is in status.
func (s ReviewStatus) Matches(r Review) bool {
	switch s {
	case ReviewStatusPending:
		return !r.IsApproved
	case ReviewStatusApproved:
		return r.IsApproved
	}
	return true
}

// Like marks a product as favourite for a user.
type Like struct {
	UserID    int64
	ProductID int64
	CreatedAt time.Time
}

// AggregateRating averages scores rounded to one decimal place.
func AggregateRating(scores []int) Rating {
	if len(scores) == 0 {
		return Rating{}
	}
	var sum int
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return Rating{Rate: math.Round(avg*10) / 10, Count: len(scores)}
}

// DashboardStats summarises store activity for administrators.
type DashboardStats struct {
	TotalUsers    int
	TotalProducts int
	Orders        OrderStats
}
