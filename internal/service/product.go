package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvumaihuynh/inventory-console/internal/activity"
	"github.com/tuanvumaihuynh/inventory-console/internal/apiclient"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

type AddProductParams struct {
	Sku               string  `form:"sku" validate:"required"`
	Name              string  `form:"name" validate:"required"`
	Category          string  `form:"category"`
	Supplier          string  `form:"supplier"`
	Price             float64 `form:"price" validate:"gte=0"`
	StockQuantity     int     `form:"stock_quantity" validate:"gte=0"`
	MinStockThreshold int     `form:"min_stock_threshold" validate:"gte=0"`
}

// DefaultMinStockThreshold prefills the add product form.
const DefaultMinStockThreshold = 10

// ProductRow is one rendered row of the product table.
type ProductRow struct {
	model.Product
	CategoryLabel string
	PriceLabel    string
	// Action is the label of the row's action cell, empty when the session
	// has no row actions.
	Action string
	// Hidden rows stay in the table but are not shown.
	Hidden bool
}

type ProductsView struct {
	Query string
	Rows  []ProductRow
}

// Visible counts the rows not hidden by the filter.
func (v ProductsView) Visible() int {
	n := 0
	for _, r := range v.Rows {
		if !r.Hidden {
			n++
		}
	}
	return n
}

type DashboardView struct {
	Stats      model.Stats
	StatsErr   error
	Categories []model.CategoryStock
	ProductErr error
}

type ProductService interface {
	Dashboard(ctx context.Context, sess model.Session) (DashboardView, error)
	// Products lists the catalog; rows whose text does not contain query
	// (case-insensitive) are marked hidden.
	Products(ctx context.Context, sess model.Session, query string) (ProductsView, error)
	AddProduct(ctx context.Context, sess model.Session, params AddProductParams) error
	DeleteProduct(ctx context.Context, sess model.Session, id int) error
}

// Dashboard fetches stats and products concurrently. A failure of one
// fetch is reported in the view and does not hide the other; the returned
// error is only set when ctx ends first.
func (s *service) Dashboard(ctx context.Context, sess model.Session) (DashboardView, error) {
	api := s.client(sess)
	var view DashboardView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := api.Stats(gctx)
		if err != nil {
			view.StatsErr = err
			return nil
		}
		view.Stats = stats
		return nil
	})
	g.Go(func() error {
		products, err := api.ListProducts(gctx)
		if err != nil {
			view.ProductErr = err
			return nil
		}
		view.Categories = model.StockByCategory(products)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return DashboardView{}, err
	}
	return view, nil
}

func (s *service) Products(ctx context.Context, sess model.Session, query string) (ProductsView, error) {
	products, err := s.client(sess).ListProducts(ctx)
	if err != nil {
		return ProductsView{}, fmt.Errorf("api client list products: %w", err)
	}

	view := ProductsView{
		Query: query,
		Rows:  make([]ProductRow, 0, len(products)),
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	for _, p := range products {
		row := s.productRow(p)
		if sess.IsAdmin() {
			row.Action = "Delete"
		}
		row.Hidden = needle != "" && !strings.Contains(strings.ToLower(row.Text()), needle)
		view.Rows = append(view.Rows, row)
	}

	return view, nil
}

func (s *service) productRow(p model.Product) ProductRow {
	category := p.Category
	if category == "" {
		category = "-"
	}
	return ProductRow{
		Product:       p,
		CategoryLabel: category,
		PriceLabel:    FormatPrice(s.cfg.CurrencySymbol, p.Price),
	}
}

// Text is the row's visible cell text, the haystack of the product filter.
func (r ProductRow) Text() string {
	return strings.Join([]string{
		r.Sku,
		r.Name,
		r.CategoryLabel,
		r.PriceLabel,
		strconv.Itoa(r.StockQuantity),
		r.Status(),
		r.Action,
	}, " ")
}

// FormatPrice renders a price with two decimals, e.g. "₹12.50".
func FormatPrice(symbol string, price float64) string {
	return fmt.Sprintf("%s%.2f", symbol, price)
}

func (s *service) AddProduct(ctx context.Context, sess model.Session, params AddProductParams) error {
	if err := s.validate(params); err != nil {
		return err
	}

	if err := s.client(sess).CreateProduct(ctx, apiclient.CreateProductRequest{
		Sku:               params.Sku,
		Name:              params.Name,
		Category:          params.Category,
		Supplier:          params.Supplier,
		Price:             params.Price,
		StockQuantity:     params.StockQuantity,
		MinStockThreshold: params.MinStockThreshold,
	}); err != nil {
		return fmt.Errorf("api client create product: %w", err)
	}

	s.record(ctx, sess, activity.TypeProductCreated, params.Sku, params.Name)
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, sess model.Session, id int) error {
	if err := s.client(sess).DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("api client delete product: %w", err)
	}

	s.record(ctx, sess, activity.TypeProductDeleted, strconv.Itoa(id), "")
	return nil
}
