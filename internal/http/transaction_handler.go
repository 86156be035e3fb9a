package http

import (
	"net/http"

	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
)

const transactionsPage = "transactions"

func (s *Service) recordTransaction(w http.ResponseWriter, r *http.Request) {
	params, err := decodeRecordTransaction(w, r)
	if err == nil {
		_, err = s.consoleSvc.RecordTransaction(r.Context(), currentSession(r), params)
	}
	if err != nil {
		if s.expireIfUnauthorized(w, r, err) {
			return
		}
		setFlash(w, views.FlashError, "Transaction Failed: "+errMessage(err))
		s.redirect(w, r, pagePath(transactionsPage))
		return
	}

	setFlash(w, views.FlashSuccess, "Transaction recorded!")
	s.redirect(w, r, pagePath(transactionsPage))
}
