package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/permissioned_ledger/internal/apperrors"
	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/permissioned_ledger/internal/core/ports/services"
	"github.com/SscSPs/permissioned_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	RoleReader portssvc.RoleReaderSvc
	Publisher  portssvc.EventPublisher
	Sequencer  *Sequencer
	Clock      func() time.Time
}

// ServiceOption is a functional option shared by the ledger services.
type ServiceOption func(*BaseService)

// WithEventPublisher sets the sink notified after every successful mutation.
func WithEventPublisher(publisher portssvc.EventPublisher) ServiceOption {
	return func(s *BaseService) {
		s.Publisher = publisher
	}
}

// WithSequencer makes the service share the given sequencer.
func WithSequencer(seq *Sequencer) ServiceOption {
	return func(s *BaseService) {
		s.Sequencer = seq
	}
}

// WithRoleReader sets the role lookup used for authorization.
func WithRoleReader(reader portssvc.RoleReaderSvc) ServiceOption {
	return func(s *BaseService) {
		s.RoleReader = reader
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	if base.Sequencer == nil {
		base.Sequencer = NewSequencer()
	}
	if base.Clock == nil {
		base.Clock = time.Now
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeRole checks that the caller's current role satisfies allowed.
func (s *BaseService) AuthorizeRole(ctx context.Context, caller domain.Principal, action string, allowed func(domain.Role) bool) error {
	if s.RoleReader == nil {
		return fmt.Errorf("no role reader configured: %w", apperrors.ErrInternal)
	}
	role, err := s.RoleReader.RoleOf(ctx, caller)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up caller role", slog.String("caller", string(caller)))
		return fmt.Errorf("failed to look up role of %s: %w", caller, err)
	}
	if !allowed(role) {
		s.LogDebug(ctx, "Caller not authorized",
			slog.String("caller", string(caller)),
			slog.String("role", string(role)),
			slog.String("action", action))
		return fmt.Errorf("%s requires a different role than %s: %w", action, role, apperrors.ErrUnauthorized)
	}
	return nil
}

// publish hands the event to the configured sink. Callers hold the sequencer,
// so sinks observe events in commit order. Sinks never fail the caller.
func (s *BaseService) publish(ctx context.Context, event domain.Event) {
	if s.Publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.Clock()
	}
	defer func() {
		if r := recover(); r != nil {
			s.GetLogger(ctx).Error("Event publisher panicked",
				slog.String("event_type", string(event.Type)),
				slog.Any("panic", r))
		}
	}()
	s.Publisher.Publish(ctx, event)
}
