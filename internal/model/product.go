package model

const (
	StatusLowStock = "Low Stock"
	StatusInStock  = "In Stock"

	// DefaultCategory groups products without a category on the dashboard chart.
	DefaultCategory = "Other"
)

type Product struct {
	ID                int     `json:"id"`
	Sku               string  `json:"sku"`
	Name              string  `json:"name"`
	Category          string  `json:"category,omitempty"`
	Supplier          string  `json:"supplier,omitempty"`
	Price             float64 `json:"price"`
	StockQuantity     int     `json:"stock_quantity"`
	MinStockThreshold int     `json:"min_stock_threshold"`
}

// IsLowStock reports whether the stock is at or below the product's threshold.
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockThreshold
}

func (p Product) Status() string {
	if p.IsLowStock() {
		return StatusLowStock
	}
	return StatusInStock
}

func (p Product) CategoryOrDefault() string {
	if p.Category == "" {
		return DefaultCategory
	}
	return p.Category
}

// CategoryStock is one bar of the stock-by-category chart.
type CategoryStock struct {
	Category string
	Quantity int
}

// StockByCategory sums stock per category, keeping categories in first-seen order.
func StockByCategory(products []Product) []CategoryStock {
	index := make(map[string]int)
	out := make([]CategoryStock, 0)
	for _, p := range products {
		cat := p.CategoryOrDefault()
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, CategoryStock{Category: cat})
		}
		out[i].Quantity += p.StockQuantity
	}
	return out
}
