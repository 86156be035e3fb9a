package views

import (
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/nav"
	"github.com/tuanvumaihuynh/inventory-console/internal/service"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind `json:"k"`
	Message string    `json:"m"`
}

type Badge struct {
	Username  string
	Role      model.Role
	ExpiresAt string
}

// Shell wraps every signed-in page.
type Shell struct {
	AppTitle string
	Page     nav.Page
	Nav      []nav.Entry
	User     Badge
	IsAdmin  bool
	Flash    *Flash
	Content  any
}

type Auth struct {
	AppTitle string
	// Mode selects the visible form: "login" or "register".
	Mode  string
	Flash *Flash
}

// Region is a data region: exactly one of data, empty state or error is shown.
type Region struct {
	Err string
}

type Dashboard struct {
	Stats      model.Stats
	StatsErr   string
	Bars       []Bar
	ProductErr string
}

type Bar struct {
	Category string
	Quantity int
	Percent  int
}

type Products struct {
	Region
	View                     service.ProductsView
	DefaultMinStockThreshold int
}

type Transactions struct {
	Region
	View service.TransactionsView
}

type Reports struct{}

type Pending struct {
	Region
	Users []model.PendingUser
}

type Logs struct {
	Region
	Logs []model.LogEntry
}

type NotFound struct {
	PageID string
}

// Confirm asks before a destructive or privileged action.
type Confirm struct {
	Message   string
	Action    string
	CancelURL string
	Danger    bool
}
