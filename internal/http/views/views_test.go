package views_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/nav"
	"github.com/tuanvumaihuynh/inventory-console/pkg/ptr"
)

func newRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	r, err := views.New(config.Console{Title: "Smart Inventory", TimeFormat: "2006-01-02 15:04"})
	require.NoError(t, err)
	return r
}

func shell(pageID string, content any) views.Shell {
	page, _ := nav.Default().Lookup(pageID)
	return views.Shell{
		AppTitle: "Smart Inventory",
		Page:     page,
		Nav:      nav.Default().Navigation(pageID, model.RoleAdmin),
		User:     views.Badge{Username: "admin", Role: model.RoleAdmin},
		IsAdmin:  true,
		Content:  content,
	}
}

func TestRenderer(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	t.Run("Should have a view for every page", func(t *testing.T) {
		for _, id := range []string{"dashboard", "products", "transactions", "reports", "admin-pending", "admin-logs", "not-found", "confirm", views.AuthView} {
			assert.True(t, r.Has(id), id)
		}
	})

	t.Run("Should write nothing for unknown views", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusOK, "warehouse", nil)
		require.Error(t, err)
		assert.Zero(t, rec.Body.Len())
	})

	t.Run("Should escape the auth flash", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusUnauthorized, views.AuthView, views.Auth{
			AppTitle: "Smart Inventory",
			Mode:     "login",
			Flash:    &views.Flash{Kind: views.FlashError, Message: "<b>nope</b>"},
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "&lt;b&gt;nope&lt;/b&gt;")
		assert.Contains(t, rec.Body.String(), `id="login-form"`)
	})

	t.Run("Should default dashboard cards to zero", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusOK, "dashboard", shell("dashboard", views.Dashboard{
			Stats: model.Stats{LowStockCount: ptr.New(4)},
		}))
		require.NoError(t, err)

		body := rec.Body.String()
		assert.Contains(t, body, `id="stats-total-products">0<`)
		assert.Contains(t, body, `id="stats-low-stock">4<`)
		assert.Contains(t, body, `id="stats-recent-tx">0<`)
		assert.NotContains(t, body, `id="inventoryChart"`)
	})

	t.Run("Should render dash and duration in logs", func(t *testing.T) {
		login := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		logout := model.Timestamp{Time: login.Add(90 * time.Minute)}

		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusOK, "admin-logs", shell("admin-logs", views.Logs{Logs: []model.LogEntry{
			{Username: "bob", Role: model.RoleEmployee, LoginTime: model.Timestamp{Time: login}, LogoutTime: &logout},
			{Username: "amy", Name: "Amy", Role: model.RoleEmployee, LoginTime: model.Timestamp{Time: login}},
		}}))
		require.NoError(t, err)

		body := rec.Body.String()
		assert.Contains(t, body, "2024-03-01 10:30")
		assert.Contains(t, body, "90 mins")
		assert.Contains(t, body, "<td>-</td>")
		assert.Contains(t, body, "Amy")
	})

	t.Run("Should render empty states", func(t *testing.T) {
		cases := map[string]struct {
			content any
			want    string
		}{
			"admin-pending": {views.Pending{}, "No pending users found."},
			"admin-logs":    {views.Logs{}, "No logs found."},
			"transactions":  {views.Transactions{}, "No transactions found."},
			"products":      {views.Products{}, "No products found."},
		}
		for view, tc := range cases {
			rec := httptest.NewRecorder()
			require.NoError(t, r.Render(rec, http.StatusOK, view, shell(view, tc.content)), view)
			assert.Contains(t, rec.Body.String(), tc.want, view)
		}
	})

	t.Run("Should replace data with region errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusOK, "admin-pending", shell("admin-pending", views.Pending{
			Region: views.Region{Err: "Unauthorized"},
		}))
		require.NoError(t, err)
		assert.Contains(t, rec.Body.String(), "Error loading pending users: Unauthorized")
		assert.NotContains(t, rec.Body.String(), "No pending users found.")
	})
}
