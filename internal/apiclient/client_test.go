package apiclient_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-console/internal/apiclient"
	"github.com/tuanvumaihuynh/inventory-console/internal/apiclient/apiclienttest"
	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/log"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/pkg/zerror"
)

func newClient(t *testing.T) (*apiclient.Client, *apiclienttest.Server) {
	t.Helper()
	backend := apiclienttest.NewServer(t)
	return apiclient.New(backend.BackendConfig(), log.Discard()), backend
}

func TestClientCall(t *testing.T) {
	ctx := context.Background()

	t.Run("Should send json content type without bearer when anonymous", func(t *testing.T) {
		client, backend := newClient(t)
		backend.SeedUser(apiclienttest.User{Username: "alice", Password: "secret", Role: model.RoleAdmin})

		res, err := client.Login(ctx, apiclient.LoginRequest{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "alice", res.Username)
		assert.Equal(t, model.RoleAdmin, res.Role)
		assert.NotEmpty(t, res.Token)

		reqs := backend.RequestsTo(http.MethodPost, "/auth/login")
		require.Len(t, reqs, 1)
		assert.Equal(t, "application/json", reqs[0].ContentType)
		assert.Empty(t, reqs[0].Authorization)
		assert.JSONEq(t, `{"username":"alice","password":"secret"}`, reqs[0].Body)
		assert.Empty(t, backend.Violations())
	})

	t.Run("Should attach bearer token when bound", func(t *testing.T) {
		client, backend := newClient(t)
		backend.SeedUser(apiclienttest.User{Username: "alice", Password: "secret"})
		token := backend.Token("alice")

		_, err := client.WithToken(token).ListProducts(ctx)
		require.NoError(t, err)

		reqs := backend.RequestsTo(http.MethodGet, "/products")
		require.Len(t, reqs, 1)
		assert.Equal(t, "Bearer "+token, reqs[0].Authorization)
		assert.Equal(t, "application/json", reqs[0].ContentType)
	})

	t.Run("Should surface server message on failure", func(t *testing.T) {
		client, backend := newClient(t)
		backend.SeedUser(apiclienttest.User{Username: "alice", Password: "secret"})

		_, err := client.Login(ctx, apiclient.LoginRequest{Username: "alice", Password: "wrong"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.APIErr)
		assert.Equal(t, "Invalid credentials", apiclient.Message(err))
		assert.True(t, apiclient.IsUnauthorized(err))
	})

	t.Run("Should fall back to generic message", func(t *testing.T) {
		client, backend := newClient(t)
		backend.Fail(http.MethodGet, "/reports/stats", http.StatusInternalServerError, "<html>oops</html>")

		_, err := client.WithToken("x").Stats(ctx)
		require.Error(t, err)
		assert.Equal(t, "API Error", apiclient.Message(err))

		zErr, ok := zerror.As(err)
		require.True(t, ok)
		assert.Equal(t, zerror.StatusInternalServerError, zErr.Status())
		assert.False(t, apiclient.IsUnauthorized(err))
	})

	t.Run("Should report transport failures", func(t *testing.T) {
		client := apiclient.New(config.Backend{BaseURL: "http://127.0.0.1:1/api", Timeout: time.Second}, log.Discard())

		_, err := client.ListProducts(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.TransportErr)
		assert.NotEqual(t, "API Error", apiclient.Message(err))
	})

	t.Run("Should stop when the context is cancelled", func(t *testing.T) {
		client, backend := newClient(t)
		backend.SeedUser(apiclienttest.User{Username: "alice", Password: "secret"})
		backend.SetDelay(5 * time.Second)

		ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err := client.WithToken(backend.Token("alice")).ListProducts(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Should reject unparsable success bodies", func(t *testing.T) {
		client, backend := newClient(t)
		backend.Fail(http.MethodGet, "/products", http.StatusOK, "not json")

		_, err := client.WithToken("x").ListProducts(ctx)
		require.Error(t, err)
		assert.Equal(t, "invalid response from server", apiclient.Message(err))
	})
}

func TestClientOperations(t *testing.T) {
	ctx := context.Background()
	client, backend := newClient(t)
	backend.SeedUser(apiclienttest.User{Username: "root", Password: "pw", Role: model.RoleAdmin})
	admin := client.WithToken(backend.Token("root"))

	t.Run("Should register pending employees", func(t *testing.T) {
		msg, err := client.Register(ctx, apiclient.RegisterRequest{Name: "Bob", Email: "bob@example.com", Username: "bob", Password: "pw"})
		require.NoError(t, err)
		assert.Contains(t, msg, "Registration successful")

		users, err := admin.ListPendingUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "bob", users[0].Username)
		assert.Equal(t, "Bob", users[0].Name)

		require.NoError(t, admin.ApproveUser(ctx, users[0].ID))
		users, err = admin.ListPendingUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("Should reject users", func(t *testing.T) {
		_, err := client.Register(ctx, apiclient.RegisterRequest{Username: "eve", Password: "pw"})
		require.NoError(t, err)

		users, err := admin.ListPendingUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)

		require.NoError(t, admin.RejectUser(ctx, users[0].ID))
		err = admin.RejectUser(ctx, users[0].ID)
		assert.Equal(t, "Not Found", apiclient.Message(err))
	})

	t.Run("Should manage products and transactions", func(t *testing.T) {
		require.NoError(t, admin.CreateProduct(ctx, apiclient.CreateProductRequest{
			Sku: "SKU-1", Name: "Bolt", Category: "Hardware", Price: 1.5, StockQuantity: 10, MinStockThreshold: 2,
		}))

		err := admin.CreateProduct(ctx, apiclient.CreateProductRequest{Sku: "SKU-1", Name: "Dup"})
		assert.Equal(t, "Product with this SKU already exists", apiclient.Message(err))

		products, err := admin.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		id := products[0].ID

		res, err := admin.CreateTransaction(ctx, apiclient.CreateTransactionRequest{
			ProductID: id, TransactionType: model.TransactionTypeOut, Quantity: 3,
		})
		require.NoError(t, err)
		require.NotNil(t, res.NewStock)
		assert.Equal(t, 7, *res.NewStock)

		txs, err := admin.ListTransactions(ctx)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, "SKU-1", txs[0].ProductSku)
		assert.Equal(t, model.TransactionTypeOut, txs[0].TransactionType)
		assert.Equal(t, 3, txs[0].Quantity)
		assert.Equal(t, "root", txs[0].User)

		stats, err := admin.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, *stats.TotalProducts)
		assert.Equal(t, 0, *stats.LowStockCount)
		assert.Equal(t, 1, *stats.RecentTransactions)

		data, err := admin.ExportCSV(ctx)
		require.NoError(t, err)
		rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "SKU-1", rows[1][1])

		require.NoError(t, admin.DeleteProduct(ctx, id))
		products, err = admin.ListProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Should list login logs and close them on logout", func(t *testing.T) {
		res, err := client.Login(ctx, apiclient.LoginRequest{Username: "bob", Password: "pw"})
		require.NoError(t, err)
		require.NoError(t, client.WithToken(res.Token).Logout(ctx))

		logs, err := admin.ListLoginLogs(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, logs)
		assert.Equal(t, "bob", logs[0].Username)
		assert.NotNil(t, logs[0].LogoutTime)
	})

	assert.Empty(t, backend.Violations())
}
