package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-console/internal/http/views"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

const pendingPage = "admin-pending"

type userAction func(ctx context.Context, sess model.Session, id int) error

func (s *Service) confirmApproveUser(w http.ResponseWriter, r *http.Request) {
	s.confirmUserAction(w, r, "Approve this user?", "approve", false)
}

func (s *Service) confirmRejectUser(w http.ResponseWriter, r *http.Request) {
	s.confirmUserAction(w, r, "Reject/Delete this user?", "reject", true)
}

func (s *Service) approveUser(w http.ResponseWriter, r *http.Request) {
	s.userAction(w, r, s.consoleSvc.ApproveUser, "User Approved")
}

func (s *Service) rejectUser(w http.ResponseWriter, r *http.Request) {
	s.userAction(w, r, s.consoleSvc.RejectUser, "User Rejected")
}

func (s *Service) confirmUserAction(w http.ResponseWriter, r *http.Request, msg, verb string, danger bool) {
	id, ok := idParam(r)
	if !ok {
		s.renderNotFound(w, r, r.URL.Path)
		return
	}

	s.renderConfirm(w, r, pendingPage, views.Confirm{
		Message: msg,
		Action:  fmt.Sprintf("/admin/users/%d/%s", id, verb),
		Danger:  danger,
	})
}

func (s *Service) userAction(w http.ResponseWriter, r *http.Request, action userAction, success string) {
	id, ok := idParam(r)
	if !ok {
		s.renderNotFound(w, r, r.URL.Path)
		return
	}

	if err := action(r.Context(), currentSession(r), id); err != nil {
		if s.expireIfUnauthorized(w, r, err) {
			return
		}
		setFlash(w, views.FlashError, errMessage(err))
	} else {
		setFlash(w, views.FlashSuccess, success)
	}

	s.redirect(w, r, pagePath(pendingPage))
}
