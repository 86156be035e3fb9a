package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/internal/nav"
)

func activeIDs(entries []nav.Entry) []string {
	var ids []string
	for _, e := range entries {
		if e.Active {
			ids = append(ids, e.NavID)
		}
	}
	return ids
}

func TestLookup(t *testing.T) {
	r := nav.Default()

	titles := map[string]string{
		"dashboard":     "Dashboard Overview",
		"products":      "Product Management",
		"transactions":  "Stock Operations",
		"reports":       "Reports",
		"admin-pending": "Pending Approvals",
		"admin-logs":    "Employee Logs",
	}
	for id, title := range titles {
		p, err := r.Lookup(id)
		require.NoError(t, err, id)
		assert.Equal(t, title, p.Title)
	}

	_, err := r.Lookup("nope")
	assert.ErrorIs(t, err, apperr.PageNotFoundErr)
}

func TestNavigation(t *testing.T) {
	r := nav.Default()

	t.Run("Should mark exactly one entry active", func(t *testing.T) {
		for _, id := range []string{"dashboard", "products", "transactions", "reports", "admin-pending", "admin-logs"} {
			entries := r.Navigation(id, model.RoleAdmin)
			p, err := r.Lookup(id)
			require.NoError(t, err)
			assert.Equal(t, []string{p.NavID}, activeIDs(entries), id)
		}
	})

	t.Run("Should activate the stock operations entry for transactions", func(t *testing.T) {
		entries := r.Navigation("transactions", model.RoleEmployee)
		assert.Equal(t, []string{"nav-transactions"}, activeIDs(entries))
	})

	t.Run("Should list admin entries once for admins across navigations", func(t *testing.T) {
		var entries []nav.Entry
		for range 5 {
			for _, id := range []string{"dashboard", "admin-logs", "products"} {
				entries = r.Navigation(id, model.RoleAdmin)
			}
		}

		counts := map[string]int{}
		for _, e := range entries {
			counts[e.Label]++
		}
		assert.Equal(t, 1, counts["Pending Users"])
		assert.Equal(t, 1, counts["Employee Logs"])
	})

	t.Run("Should hide admin entries from employees", func(t *testing.T) {
		for _, e := range r.Navigation("dashboard", model.RoleEmployee) {
			assert.False(t, e.AdminOnly, e.Label)
		}
	})
}

func TestAccessible(t *testing.T) {
	r := nav.Default()

	pending, err := r.Lookup("admin-pending")
	require.NoError(t, err)
	assert.True(t, pending.Accessible(model.RoleAdmin))
	assert.False(t, pending.Accessible(model.RoleEmployee))

	products, err := r.Lookup("products")
	require.NoError(t, err)
	assert.True(t, products.Accessible(model.RoleEmployee))
}

func TestParse(t *testing.T) {
	_, err := nav.Parse([]byte("pages:\n  - {id: a, nav_id: x}\n  - {id: a, nav_id: y}\n"))
	assert.Error(t, err)

	_, err = nav.Parse([]byte("pages:\n  - {id: a}\n"))
	assert.Error(t, err)

	r, err := nav.Parse([]byte("pages:\n  - {id: a, nav_id: x, title: A}\n"))
	require.NoError(t, err)
	p, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Title)
}
