package domain

import (
	"time"

	"github.com/pixelmart/storefront/pkg/apperror"
)

// Product is the canonical catalog document. Legacy payloads that still carry
// "name" instead of "title" are mapped at the HTTP boundary, never here.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Platforms   []string  `json:"platforms"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Product) Validate() error {
	if p.Title == "" {
		return apperror.New(apperror.CodeInvalid, "product title is required")
	}
	if p.Price < 0 {
		return apperror.New(apperror.CodeInvalid, "price cannot be negative")
	}
	if p.Stock < 0 {
		return apperror.New(apperror.CodeInvalid, "stock cannot be negative")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return apperror.New(apperror.CodeInvalid, "rating must be between 0 and 5")
	}
	return nil
}
