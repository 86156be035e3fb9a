// Package apiclienttest provides an in-memory inventory backend for tests.
// It implements the API contract in api-contract/openapi.yml and rejects
// requests that violate it.
package apiclienttest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

const (
	apiPrefix = "/api"
	// TimeLayout is how the backend renders timestamps (naive, UTC).
	TimeLayout = "2006-01-02T15:04:05.999999"

	StatusPending  = "pending"
	StatusApproved = "approved"
)

var signingKey = []byte("apiclienttest-secret")

// User is a backend account.
type User struct {
	ID       int
	Username string
	Password string
	Name     string
	Email    string
	Role     model.Role
	Status   string
}

type loginLog struct {
	userID int
	login  time.Time
	logout *time.Time
}

type transaction struct {
	id        int
	productID int
	txType    model.TransactionType
	quantity  int
	userID    int
	at        time.Time
}

// Request is a request observed by the fake backend.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          string
}

type failure struct {
	status int
	body   string
}

// Server is a fake inventory backend.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	contract     *contract
	now          func() time.Time
	users        []*User
	products     []*model.Product
	transactions []*transaction
	logs         []*loginLog
	nextID       int
	requests     []Request
	violations   []string
	failures     map[string]failure
	delay        time.Duration
}

// NewServer starts a fake backend that is closed with the test.
func NewServer(t testing.TB) *Server {
	t.Helper()

	c, err := newContract()
	if err != nil {
		t.Fatalf("load api contract: %v", err)
	}

	s := &Server{
		contract: c,
		now:      func() time.Time { return time.Now().UTC() },
		failures: make(map[string]failure),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)

	return s
}

// BackendConfig returns a config pointing at the fake backend.
func (s *Server) BackendConfig() config.Backend {
	return config.Backend{BaseURL: s.URL + apiPrefix, Timeout: 5 * time.Second}
}

// SetClock overrides the backend clock.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetDelay makes every handler wait d (or until the request is cancelled).
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Fail makes method+path (without the /api prefix) answer status with body.
func (s *Server) Fail(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// SeedUser adds an account and returns its id.
func (s *Server) SeedUser(u User) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(u)
}

// SeedProduct adds a product and returns its id.
func (s *Server) SeedProduct(p model.Product) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	s.products = append(s.products, &p)
	return p.ID
}

// SeedLoginLog records a login (and optional logout) for username.
func (s *Server) SeedLoginLog(username string, login time.Time, logout *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByName(username)
	if u == nil {
		return
	}
	s.logs = append(s.logs, &loginLog{userID: u.ID, login: login, logout: logout})
}

// Token issues a valid token for username.
func (s *Server) Token(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByName(username)
	if u == nil {
		return ""
	}
	return s.issueToken(u)
}

// Products returns a snapshot of the catalogue.
func (s *Server) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out
}

// Users returns a snapshot of all accounts.
func (s *Server) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the requests received for method+path (without /api).
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == apiPrefix+path {
			out = append(out, r)
		}
	}
	return out
}

// Violations lists contract violations seen so far.
func (s *Server) Violations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.violations...)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.injectFailures)

	r.Route(apiPrefix, func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Post("/auth/register", s.register)

		r.Group(func(r chi.Router) {
			r.Use(s.tokenRequired)

			r.Post("/auth/logout", s.logout)
			r.Get("/auth/pending", s.adminOnly(s.listPending))
			r.Put("/auth/approve/{id}", s.adminOnly(s.approve))
			r.Delete("/auth/reject/{id}", s.adminOnly(s.reject))
			r.Get("/auth/logs", s.adminOnly(s.listLogs))

			r.Get("/products", s.listProducts)
			r.Post("/products", s.adminOnly(s.createProduct))
			r.Delete("/products/{id}", s.adminOnly(s.deleteProduct))

			r.Get("/transactions", s.listTransactions)
			r.Post("/transactions", s.createTransaction)

			r.Get("/reports/stats", s.stats)
			r.Get("/reports/export/csv", s.adminOnly(s.exportCSV))
		})
	})

	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		validationErr := s.contract.validate(r)

		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(strings.NewReader(string(body)))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          string(body),
		})
		if validationErr != nil {
			s.violations = append(s.violations, validationErr.Error())
		}
		delay := s.delay
		s.mu.Unlock()

		if validationErr != nil {
			writeMessage(w, http.StatusBadRequest, "contract violation: "+validationErr.Error())
			return
		}

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.Method+" "+strings.TrimPrefix(r.URL.Path, apiPrefix)]
		s.mu.Unlock()

		if ok {
			w.WriteHeader(f.status)
			//nolint:errcheck
			io.WriteString(w, f.body)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type userKey struct{}

type claims struct {
	ID   int        `json:"id"`
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(u *User) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:   u.ID,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
		},
	})
	signed, err := token.SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return signed
}

func (s *Server) tokenRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeMessage(w, http.StatusUnauthorized, "Token is missing!")
			return
		}

		var c claims
		_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
			return signingKey, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Token is invalid!")
			return
		}

		s.mu.Lock()
		u := s.userByID(c.ID)
		s.mu.Unlock()
		if u == nil {
			writeMessage(w, http.StatusUnauthorized, "Token is invalid!")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r, u)))
	})
}

func (s *Server) adminOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != model.RoleAdmin {
			writeMessage(w, http.StatusForbidden, "Unauthorized")
			return
		}
		h(w, r)
	}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "No JSON data received")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userByName(req.Username) != nil {
		writeMessage(w, http.StatusConflict, "User already exists")
		return
	}

	u := User{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Role:     model.RoleEmployee,
		Status:   StatusPending,
	}
	if len(s.users) == 0 {
		u.Role = model.RoleAdmin
		u.Status = StatusApproved
	}
	s.addUser(u)

	writeMessage(w, http.StatusCreated, "Registration successful. Please wait for Admin approval.")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Missing data")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByName(req.Username)
	if u == nil || u.Password != req.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if u.Status != StatusApproved {
		writeMessage(w, http.StatusForbidden, "Account is pending approval.")
		return
	}

	s.logs = append(s.logs, &loginLog{userID: u.ID, login: s.now()})

	writeJSON(w, http.StatusOK, map[string]any{
		"token":    s.issueToken(u),
		"role":     u.Role,
		"username": u.Username,
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	var last *loginLog
	for _, l := range s.logs {
		if l.userID == u.ID && (last == nil || l.login.After(last.login)) {
			last = l
		}
	}
	if last != nil && last.logout == nil {
		now := s.now()
		last.logout = &now
	}

	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (s *Server) listPending(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]map[string]any, 0)
	for _, u := range s.users {
		if u.Status != StatusPending {
			continue
		}
		users = append(users, map[string]any{
			"id":       u.ID,
			"username": u.Username,
			"name":     nullable(u.Name),
			"email":    nullable(u.Email),
			"role":     u.Role,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByID(id)
	if u == nil {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	u.Status = StatusApproved

	writeMessage(w, http.StatusOK, "User approved")
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			writeMessage(w, http.StatusOK, "User rejected")
			return
		}
	}

	writeMessage(w, http.StatusNotFound, "Not Found")
}

func (s *Server) listLogs(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := append([]*loginLog(nil), s.logs...)
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].login.After(logs[j].login) })

	out := make([]map[string]any, 0, len(logs))
	for _, l := range logs {
		u := s.userByID(l.userID)
		if u == nil {
			continue
		}
		var logout any
		if l.logout != nil {
			logout = l.logout.Format(TimeLayout)
		}
		out = append(out, map[string]any{
			"username":    u.Username,
			"name":        nullable(u.Name),
			"role":        u.Role,
			"login_time":  l.login.Format(TimeLayout),
			"logout_time": logout,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"logs": out})
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"products": s.Products()})
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req model.Product
	req.MinStockThreshold = 10
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Sku == "" || req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	s.mu.Lock()
	for _, p := range s.products {
		if p.Sku == req.Sku {
			s.mu.Unlock()
			writeMessage(w, http.StatusConflict, "Product with this SKU already exists")
			return
		}
	}
	s.mu.Unlock()

	s.SeedProduct(req)
	writeMessage(w, http.StatusCreated, "Product added successfully!")
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			writeMessage(w, http.StatusOK, "Product deleted")
			return
		}
	}

	writeMessage(w, http.StatusNotFound, "Not Found")
}

func (s *Server) listTransactions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := append([]*transaction(nil), s.transactions...)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].at.After(txs[j].at) })

	out := make([]map[string]any, 0, len(txs))
	for _, t := range txs {
		var sku, name, user string
		if p := s.productByID(t.productID); p != nil {
			sku, name = p.Sku, p.Name
		}
		if u := s.userByID(t.userID); u != nil {
			user = u.Username
		}
		out = append(out, map[string]any{
			"id":               t.id,
			"product_name":     name,
			"product_sku":      sku,
			"quantity":         t.quantity,
			"transaction_type": t.txType,
			"timestamp":        t.at.Format(TimeLayout),
			"user":             user,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": out})
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID       int                   `json:"product_id"`
		TransactionType model.TransactionType `json:"transaction_type"`
		Quantity        int                   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 || req.TransactionType == "" || req.Quantity == 0 {
		writeMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}

	u := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.productByID(req.ProductID)
	if p == nil {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	switch req.TransactionType {
	case model.TransactionTypeOut:
		if p.StockQuantity < req.Quantity {
			writeMessage(w, http.StatusBadRequest, "Insufficient stock")
			return
		}
		p.StockQuantity -= req.Quantity
	case model.TransactionTypeIn:
		p.StockQuantity += req.Quantity
	}

	s.nextID++
	s.transactions = append(s.transactions, &transaction{
		id:        s.nextID,
		productID: p.ID,
		txType:    req.TransactionType,
		quantity:  req.Quantity,
		userID:    u.ID,
		at:        s.now(),
	})

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Transaction recorded",
		"new_stock": p.StockQuantity,
	})
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	low := 0
	for _, p := range s.products {
		if p.IsLowStock() {
			low++
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_products":      len(s.products),
		"low_stock_count":     low,
		"recent_transactions": len(s.transactions),
	})
}

func (s *Server) exportCSV(w http.ResponseWriter, _ *http.Request) {
	products := s.Products()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory_report.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	//nolint:errcheck
	cw.Write([]string{"ID", "SKU", "Name", "Category", "Supplier", "Price", "Stock", "Min Threshold"})
	for _, p := range products {
		//nolint:errcheck
		cw.Write([]string{
			strconv.Itoa(p.ID), p.Sku, p.Name, p.Category, p.Supplier,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.Itoa(p.StockQuantity), strconv.Itoa(p.MinStockThreshold),
		})
	}
	cw.Flush()
}

func (s *Server) addUser(u User) int {
	s.nextID++
	u.ID = s.nextID
	if u.Role == "" {
		u.Role = model.RoleEmployee
	}
	if u.Status == "" {
		u.Status = StatusApproved
	}
	s.users = append(s.users, &u)
	return u.ID
}

func (s *Server) userByName(username string) *User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (s *Server) userByID(id int) *User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Server) productByID(id int) *model.Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func withUser(r *http.Request, u *User) context.Context {
	return context.WithValue(r.Context(), userKey{}, *u)
}

func currentUser(r *http.Request) User {
	u, _ := r.Context().Value(userKey{}).(User)
	return u
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(v)
}
