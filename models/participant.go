package models

import "time"

// Participant is an account on the marketplace. Profile editing, the social
// graph and rewards live in other services; we keep only what the booking
// core and notification worker need.
type Participant struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Trust        Trust     `bson:"trust" json:"trust"`
	DeviceTokens []string  `bson:"deviceTokens,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
