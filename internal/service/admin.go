package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tuanvumaihuynh/inventory-console/internal/activity"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

type AdminService interface {
	PendingUsers(ctx context.Context, sess model.Session) ([]model.PendingUser, error)
	ApproveUser(ctx context.Context, sess model.Session, id int) error
	RejectUser(ctx context.Context, sess model.Session, id int) error
	LoginLogs(ctx context.Context, sess model.Session) ([]model.LogEntry, error)
}

func (s *service) PendingUsers(ctx context.Context, sess model.Session) ([]model.PendingUser, error) {
	users, err := s.client(sess).ListPendingUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("api client list pending users: %w", err)
	}
	return users, nil
}

func (s *service) ApproveUser(ctx context.Context, sess model.Session, id int) error {
	if err := s.client(sess).ApproveUser(ctx, id); err != nil {
		return fmt.Errorf("api client approve user: %w", err)
	}

	s.record(ctx, sess, activity.TypeUserApproved, strconv.Itoa(id), "")
	return nil
}

func (s *service) RejectUser(ctx context.Context, sess model.Session, id int) error {
	if err := s.client(sess).RejectUser(ctx, id); err != nil {
		return fmt.Errorf("api client reject user: %w", err)
	}

	s.record(ctx, sess, activity.TypeUserRejected, strconv.Itoa(id), "")
	return nil
}

func (s *service) LoginLogs(ctx context.Context, sess model.Session) ([]model.LogEntry, error) {
	logs, err := s.client(sess).ListLoginLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("api client list login logs: %w", err)
	}
	return logs, nil
}
