package model

import "time"

const uploadURLPrefix = "/static/uploads/"

// MasterProduct 全域商品目錄
type MasterProduct struct {
	ID          int       `json:"id" db:"id"`
	ProductCode string    `json:"product_code" db:"product_code"`
	Name        string    `json:"name" db:"name"`
	DefaultPrice float64  `json:"default_price" db:"default_price"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	Category    *string   `json:"category,omitempty" db:"category"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateMasterProductRequest struct {
	ProductCode  string  `json:"product_code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	DefaultPrice float64 `json:"default_price" binding:"required,min=0"`
	Category     *string `json:"category"`
}

type UpdateMasterProductRequest struct {
	Name         *string  `json:"name"`
	DefaultPrice *float64 `json:"default_price"`
	Category     *string  `json:"category"`
}

type UpdateMasterProductParams struct {
	Name         *string
	DefaultPrice *float64
	Category     *string
}

// ResolveImageURL turns the stored relative path into the URL the
// frontend renders, or nil when the product has no image.
func ResolveImageURL(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	url := uploadURLPrefix + *path
	return &url
}
