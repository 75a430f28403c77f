package models

import "time"

// Review is feedback on a completed booking. One per (booking, reviewer).
type Review struct {
	ID         string         `bson:"id" json:"id"`
	BookingID  string         `bson:"bookingId" json:"bookingId"`
	ReviewerID string         `bson:"reviewerId" json:"reviewerId"`
	RevieweeID string         `bson:"revieweeId" json:"revieweeId"`
	Rating     int            `bson:"rating" json:"rating"`                         // 1-5
	SubScores  map[string]int `bson:"subScores,omitempty" json:"subScores,omitempty"` // category scores, opaque to aggregation
	Comment    string         `bson:"comment,omitempty" json:"comment,omitempty"`
	IsPublic   bool           `bson:"isPublic" json:"isPublic"`
	CreatedAt  time.Time      `bson:"createdAt" json:"createdAt"`
}

// ReviewInput is the caller-supplied part of a review.
type ReviewInput struct {
	Rating    int            `json:"rating" binding:"required,min=1,max=5"`
	SubScores map[string]int `json:"subScores,omitempty"`
	Comment   string         `json:"comment,omitempty"`
	IsPublic  bool           `json:"isPublic"`
}
