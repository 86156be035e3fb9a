package model

import "encoding/json"

// Stats holds the dashboard counters. A nil field was absent from the payload.
type Stats struct {
	TotalProducts      *int `json:"total_products,omitempty"`
	LowStockCount      *int `json:"low_stock_count,omitempty"`
	RecentTransactions *int `json:"recent_transactions,omitempty"`
}

// UnmarshalJSON accepts the legacy recent_tx_count key as well.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw struct {
		TotalProducts      *int `json:"total_products"`
		LowStockCount      *int `json:"low_stock_count"`
		RecentTransactions *int `json:"recent_transactions"`
		RecentTxCount      *int `json:"recent_tx_count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.TotalProducts = raw.TotalProducts
	s.LowStockCount = raw.LowStockCount
	s.RecentTransactions = raw.RecentTransactions
	if s.RecentTransactions == nil {
		s.RecentTransactions = raw.RecentTxCount
	}
	return nil
}
