package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/service"
)

const maxFormBytes = 64 << 10

// formReader reads typed values from a submitted form, collecting
// conversion failures instead of stopping at the first one.
type formReader struct {
	r    *http.Request
	errs []string
}

func newFormReader(w http.ResponseWriter, r *http.Request) (*formReader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, apperr.ValidationErr.WithMsg("invalid form").WrapParent(err)
	}
	return &formReader{r: r}, nil
}

func (f *formReader) String(name string) string {
	return strings.TrimSpace(f.r.PostForm.Get(name))
}

// Int returns def for an empty field.
func (f *formReader) Int(name string, def int) int {
	v := f.String(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errs = append(f.errs, fmt.Sprintf("%s: must be a whole number", name))
		return def
	}
	return n
}

// Float returns def for an empty field.
func (f *formReader) Float(name string, def float64) float64 {
	v := f.String(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		f.errs = append(f.errs, fmt.Sprintf("%s: must be a number", name))
		return def
	}
	return n
}

func (f *formReader) Err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return apperr.ValidationErr.WithMsg(strings.Join(f.errs, "; "))
}

func decodeLogin(w http.ResponseWriter, r *http.Request) (service.LoginParams, error) {
	f, err := newFormReader(w, r)
	if err != nil {
		return service.LoginParams{}, err
	}
	return service.LoginParams{
		Username: f.String("username"),
		// Passwords are sent as typed.
		Password: f.r.PostForm.Get("password"),
	}, nil
}

func decodeRegister(w http.ResponseWriter, r *http.Request) (service.RegisterParams, error) {
	f, err := newFormReader(w, r)
	if err != nil {
		return service.RegisterParams{}, err
	}
	return service.RegisterParams{
		Name:     f.String("name"),
		Email:    f.String("email"),
		Username: f.String("username"),
		Password: f.r.PostForm.Get("password"),
	}, nil
}

func decodeAddProduct(w http.ResponseWriter, r *http.Request) (service.AddProductParams, error) {
	f, err := newFormReader(w, r)
	if err != nil {
		return service.AddProductParams{}, err
	}
	params := service.AddProductParams{
		Sku:               f.String("sku"),
		Name:              f.String("name"),
		Category:          f.String("category"),
		Supplier:          f.String("supplier"),
		Price:             f.Float("price", 0),
		StockQuantity:     f.Int("stock_quantity", 0),
		MinStockThreshold: f.Int("min_stock_threshold", service.DefaultMinStockThreshold),
	}
	return params, f.Err()
}

func decodeRecordTransaction(w http.ResponseWriter, r *http.Request) (service.RecordTransactionParams, error) {
	f, err := newFormReader(w, r)
	if err != nil {
		return service.RecordTransactionParams{}, err
	}
	params := service.RecordTransactionParams{
		ProductID:       f.Int("product_id", 0),
		TransactionType: model.TransactionType(f.String("transaction_type")),
		Quantity:        f.Int("quantity", 0),
	}
	return params, f.Err()
}
