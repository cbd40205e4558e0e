// Package catalog holds the club's business records scraped out of the
// admin console and the reconciliation engine that keeps the sqlite
// store in step with each scrape.
package catalog

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Category of training sessions ("Все уровни", "Продвинутые", ...).
// IDs are assigned by the console, not by us.
type Category struct {
	ID          int64
	Name        string
	SortOrder   int64
	IsVisible   bool
	LastUpdated time.Time
}

type Location struct {
	ID           int64
	Name         string
	ShowLocation bool
	// stricter than ShowLocation: only these appear on the public
	// booking screen
	ShowOnBookingScreen bool
	Description         string
	SortOrder           int64
	LastUpdated         time.Time
}

type Membership struct {
	ID   int64
	Name string
	Type string
	// whole currency units, the console never renders kopecks
	Price        int64
	SessionCount int64
	IsVisible    bool
	LastUpdated  time.Time
}

type Session struct {
	ID         int64
	Datetime   time.Time
	LocationID int64
	CategoryID int64
	Trainers   string
	Name       string
	MaxSpots   int64
	// source data may put this above MaxSpots, we store what we saw
	AvailableSpots int64
	// nil on listing variants that omit it
	Price       *int64
	Status      Status
	LastUpdated time.Time
}
