package model

// Product 場次庫存商品：master product 在單一 event 下的庫存快照
type Product struct {
	ID              int     `json:"id" db:"id"`
	EventID         int     `json:"event_id" db:"event_id"`
	MasterProductID int     `json:"master_product_id" db:"master_product_id"`
	ProductCode     string  `json:"product_code" db:"product_code"`
	Name            string  `json:"name" db:"name"`
	Price           float64 `json:"price" db:"price"`
	InitialStock    int     `json:"initial_stock" db:"initial_stock"`
	CurrentStock    int     `json:"current_stock" db:"current_stock"`

	// 以下欄位來自 JOIN master_products
	ImageURL *string `json:"image_url,omitempty" db:"-"`
	Category *string `json:"category,omitempty" db:"-"`
}

// Sold 已售數量，恆為非負
func (p *Product) Sold() int {
	return p.InitialStock - p.CurrentStock
}

// ReservedItem is the snapshot taken while stock is decremented inside a
// transaction. Order items are built from it, never from a re-read.
type ReservedItem struct {
	ProductID int
	Name      string
	Price     float64
	Quantity  int
	ImageURL  *string
}

type AddProductToEventRequest struct {
	MasterProductID int     `json:"master_product_id" binding:"required"`
	Price           *float64 `json:"price"`
	InitialStock    int     `json:"initial_stock" binding:"required,min=0"`
}

type UpdateProductRequest struct {
	Price        *float64 `json:"price"`
	InitialStock *int     `json:"initial_stock"`
}

type UpdateProductParams struct {
	Price        *float64
	InitialStock *int
}
