package models

import "time"

// TravelRecord is one journal entry. OwnerID, Lat, Lng, Address and
// Timestamp are set once at creation; only Comment and ImageURL are
// mutable. CreatedAt is assigned by the database and orders the list
// view (newest first).
type TravelRecord struct {
	ID        string
	OwnerID   string
	Lat       float64
	Lng       float64
	Address   string
	ImageURL  string
	Comment   string
	Timestamp string
	CreatedAt time.Time
}
