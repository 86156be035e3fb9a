package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
)

const flashCookie = "ic_flash"

// setFlash stores a one-shot alert shown by the next rendered page.
func setFlash(w http.ResponseWriter, kind views.FlashKind, msg string) {
	data, err := json.Marshal(views.Flash{Kind: kind, Message: msg})
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending alert, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) *views.Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}

	var f views.Flash
	if err := json.Unmarshal(data, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}
