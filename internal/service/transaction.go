package service

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvumaihuynh/inventory-console/internal/activity"
	"github.com/tuanvumaihuynh/inventory-console/internal/apiclient"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

type RecordTransactionParams struct {
	ProductID       int                   `form:"product_id" validate:"required,gt=0"`
	TransactionType model.TransactionType `form:"transaction_type" validate:"required,enum"`
	Quantity        int                   `form:"quantity" validate:"required,gt=0"`
}

// ProductOption is one entry of the transaction product selector.
type ProductOption struct {
	ID    int
	Label string
}

type TransactionsView struct {
	Options      []ProductOption
	ProductsErr  error
	Transactions []model.Transaction
	HistoryErr   error
}

type TransactionService interface {
	// Transactions fetches the selector products and the history
	// concurrently. Each failure is reported in its own field of the view;
	// the returned error is only set when ctx ends first.
	Transactions(ctx context.Context, sess model.Session) (TransactionsView, error)
	RecordTransaction(ctx context.Context, sess model.Session, params RecordTransactionParams) (model.TransactionResult, error)
}

func (s *service) Transactions(ctx context.Context, sess model.Session) (TransactionsView, error) {
	api := s.client(sess)
	var view TransactionsView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := api.ListProducts(gctx)
		if err != nil {
			view.ProductsErr = fmt.Errorf("api client list products: %w", err)
			return nil
		}
		view.Options = make([]ProductOption, 0, len(products))
		for _, p := range products {
			view.Options = append(view.Options, ProductOption{ID: p.ID, Label: OptionLabel(p)})
		}
		return nil
	})
	g.Go(func() error {
		txs, err := api.ListTransactions(gctx)
		if err != nil {
			view.HistoryErr = fmt.Errorf("api client list transactions: %w", err)
			return nil
		}
		view.Transactions = txs
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return TransactionsView{}, err
	}
	return view, nil
}

// OptionLabel renders "SKU - name (Stock: n)".
func OptionLabel(p model.Product) string {
	return fmt.Sprintf("%s - %s (Stock: %d)", p.Sku, p.Name, p.StockQuantity)
}

func (s *service) RecordTransaction(ctx context.Context, sess model.Session, params RecordTransactionParams) (model.TransactionResult, error) {
	if err := s.validate(params); err != nil {
		return model.TransactionResult{}, err
	}

	res, err := s.client(sess).CreateTransaction(ctx, apiclient.CreateTransactionRequest{
		ProductID:       params.ProductID,
		TransactionType: params.TransactionType,
		Quantity:        params.Quantity,
	})
	if err != nil {
		return model.TransactionResult{}, fmt.Errorf("api client create transaction: %w", err)
	}

	s.record(ctx, sess, activity.TypeTransactionRecorded,
		strconv.Itoa(params.ProductID),
		fmt.Sprintf("%s %d", params.TransactionType, params.Quantity),
	)
	return res, nil
}
