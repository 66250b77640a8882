package model

import "time"

// Product is a catalog entry. Category is populated when the product is read
// joined with its category; it is nil on write paths.
type Product struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	ImageURL    string         `json:"imageUrl"`
	CategoryID  int64          `json:"categoryId"`
	Attributes  map[string]any `json:"attributes"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Category    *Category      `json:"category,omitempty"`
}

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"min=0"`
	ImageURL    string         `json:"imageUrl"`
	CategoryID  int64          `json:"categoryId" binding:"required"`
	Attributes  map[string]any `json:"attributes"`
}

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Products    []Product `json:"products,omitempty"`
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
