package marketplace

import (
	"context"
	"time"
)

// Marketplace is a catalog entry describing a selling channel.
type Marketplace struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	URL            string    `json:"url"`
	Industries     []string  `json:"industries"`
	ProductTypes   []string  `json:"productTypes"`
	TargetMarkets  []string  `json:"targetMarkets"`
	CommissionRate float64   `json:"commissionRate"` // percent
	AverageRating  float64   `json:"averageRating"`
	Features       []string  `json:"features"`
	Requirements   []string  `json:"requirements"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Repository port for the marketplace catalog.
type Repository interface {
	List(ctx context.Context) ([]*Marketplace, error)
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, items []*Marketplace) error
}
