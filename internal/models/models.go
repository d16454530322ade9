package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrUserNotFound is returned when a user id or email resolves to no stored record.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Product represents a single normalized listing item scraped from a source page.
// Records are assembled per request and never persisted unless the user
// explicitly favorites them.
type Product struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	PreviousPrice     float64 `json:"previous_price,omitempty"`
	DiscountPct       float64 `json:"discount_pct,omitempty"`
	Currency          string  `json:"currency"`
	URL               string  `json:"url"`
	Image             string  `json:"image,omitempty"`
	Source            string  `json:"source"`
	SellerRating      float64 `json:"seller_rating,omitempty"`
	SellerReviewCount int     `json:"seller_review_count,omitempty"`
	DealScore         int     `json:"deal_score"`
}

// FavoriteProduct is the subset of product fields stored in a user's favorites set.
// Membership is keyed by ID.
type FavoriteProduct struct {
	ID       string    `json:"id" bson:"id"`
	Name     string    `json:"name" bson:"name"`
	Price    float64   `json:"price" bson:"price"`
	Currency string    `json:"currency" bson:"currency"`
	URL      string    `json:"url" bson:"url"`
	Image    string    `json:"image,omitempty" bson:"image,omitempty"`
	Source   string    `json:"source" bson:"source"`
	AddedAt  time.Time `json:"added_at" bson:"added_at"`
}

// User is an account record as stored in the users collection. The favorites
// array is embedded so set updates stay single atomic document operations.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Name         string             `json:"name,omitempty" bson:"name,omitempty"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	Favorites    []FavoriteProduct  `json:"favorites" bson:"favorites"`
}

// Analysis is the constrained response of the deal ranking service.
type Analysis struct {
	BestProductID       string `json:"best_product_id"`
	Reasoning           string `json:"reasoning"`
	BestTimeToBuyAdvice string `json:"best_time_to_buy_advice"`
}
