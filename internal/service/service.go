package service

import (
	"context"
	"log/slog"

	"github.com/tuanvumaihuynh/inventory-console/internal/activity"
	"github.com/tuanvumaihuynh/inventory-console/internal/apiclient"
	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
	"github.com/tuanvumaihuynh/inventory-console/pkg/validator"
)

// Service backs every console page and form. Each call is one round trip
// (or one concurrent batch) to the inventory backend on behalf of a session.
type Service interface {
	AuthService
	ProductService
	TransactionService
	ReportService
	AdminService
}

type service struct {
	api       *apiclient.Client
	validator validator.Validator
	publisher activity.Publisher
	cfg       config.Console
	logger    *slog.Logger
}

func New(
	cfg config.Console,
	api *apiclient.Client,
	v validator.Validator,
	publisher activity.Publisher,
	logger *slog.Logger,
) Service {
	return &service{
		api:       api,
		validator: v,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.With(slog.String("service", "console")),
	}
}

func (s *service) client(sess model.Session) *apiclient.Client {
	return s.api.WithToken(sess.Token)
}

// validate runs struct validation; failures never reach the backend.
func (s *service) validate(params any) error {
	if err := s.validator.Validate(params); err != nil {
		return apperr.ValidationErr.WithMsg(validator.Summary(err)).WrapParent(err)
	}
	return nil
}

func (s *service) record(ctx context.Context, sess model.Session, typ activity.Type, subject, detail string) {
	s.publisher.Publish(ctx, activity.Event{
		Type:     typ,
		Username: sess.Username,
		Role:     sess.Role,
		Subject:  subject,
		Detail:   detail,
	})
}
