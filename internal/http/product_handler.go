package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
)

const productsPage = "products"

func (s *Service) addProduct(w http.ResponseWriter, r *http.Request) {
	params, err := decodeAddProduct(w, r)
	if err == nil {
		err = s.consoleSvc.AddProduct(r.Context(), currentSession(r), params)
	}
	if err != nil {
		if s.expireIfUnauthorized(w, r, err) {
			return
		}
		setFlash(w, views.FlashError, "Failed to add product: "+errMessage(err))
		s.redirect(w, r, pagePath(productsPage))
		return
	}

	setFlash(w, views.FlashSuccess, "Product added successfully!")
	s.redirect(w, r, pagePath(productsPage))
}

func (s *Service) confirmDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		s.renderNotFound(w, r, r.URL.Path)
		return
	}

	s.renderConfirm(w, r, productsPage, views.Confirm{
		Message: "Are you sure you want to delete this product?",
		Action:  fmt.Sprintf("/products/%d/delete", id),
		Danger:  true,
	})
}

func (s *Service) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		s.renderNotFound(w, r, r.URL.Path)
		return
	}

	if err := s.consoleSvc.DeleteProduct(r.Context(), currentSession(r), id); err != nil {
		if s.expireIfUnauthorized(w, r, err) {
			return
		}
		setFlash(w, views.FlashError, "Failed to delete: "+errMessage(err))
	}

	s.redirect(w, r, pagePath(productsPage))
}
