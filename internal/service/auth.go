package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/inventory-console/internal/activity"
	"github.com/tuanvumaihuynh/inventory-console/internal/apiclient"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

type LoginParams struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type RegisterParams struct {
	Name     string `form:"name"`
	Email    string `form:"email" validate:"omitempty,email"`
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type AuthService interface {
	// Login exchanges credentials for a token. The caller persists the session.
	Login(ctx context.Context, params LoginParams) (apiclient.LoginResponse, error)
	// Register returns the backend's confirmation message.
	Register(ctx context.Context, params RegisterParams) (string, error)
	// Logout notifies the backend. Failures are logged and ignored.
	Logout(ctx context.Context, sess model.Session)
}

func (s *service) Login(ctx context.Context, params LoginParams) (apiclient.LoginResponse, error) {
	if err := s.validate(params); err != nil {
		return apiclient.LoginResponse{}, err
	}

	res, err := s.api.Login(ctx, apiclient.LoginRequest{
		Username: params.Username,
		Password: params.Password,
	})
	if err != nil {
		return apiclient.LoginResponse{}, fmt.Errorf("api client login: %w", err)
	}

	if res.Username == "" {
		res.Username = params.Username
	}

	s.record(ctx, model.Session{Username: res.Username, Role: res.Role}, activity.TypeLogin, "", "")
	return res, nil
}

func (s *service) Register(ctx context.Context, params RegisterParams) (string, error) {
	if err := s.validate(params); err != nil {
		return "", err
	}

	msg, err := s.api.Register(ctx, apiclient.RegisterRequest{
		Name:     params.Name,
		Email:    params.Email,
		Username: params.Username,
		Password: params.Password,
	})
	if err != nil {
		return "", fmt.Errorf("api client register: %w", err)
	}

	s.record(ctx, model.Session{Username: params.Username}, activity.TypeRegister, params.Username, "")
	return msg, nil
}

func (s *service) Logout(ctx context.Context, sess model.Session) {
	if err := s.client(sess).Logout(ctx); err != nil {
		s.logger.InfoContext(ctx, "backend logout failed, ignoring", slog.Any("error", err))
	}
	s.record(ctx, sess, activity.TypeLogout, "", "")
}
