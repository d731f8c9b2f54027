package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/middleware"
	"github.com/SscSPs/org_banking/internal/platform/metrics"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// BaseService provides common functionality for all services
type BaseService struct {
	Logger     *slog.Logger
	Authorizer portssvc.OrgAuthorizerSvc
	Metrics    *metrics.Recorder
	Now        Clock
}

// GetLogger returns the request-scoped logger when the context carries one,
// else the injected logger.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if logger := middleware.LoggerFromCtx(ctx); logger != nil {
		return logger
	}
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
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

// CurrentTime returns the service clock's time in UTC.
func (s *BaseService) CurrentTime() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// AuthorizeMember checks that userID belongs to organizationID and returns their role.
func (s *BaseService) AuthorizeMember(ctx context.Context, organizationID string, userID string) (domain.MemberRole, error) {
	if s.Authorizer == nil {
		s.LogError(ctx, domain.ErrNotMember, "No organization authorizer configured, denying access",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return "", domain.ErrNotMember
	}
	role, err := s.Authorizer.AuthorizeMember(ctx, organizationID, userID)
	if err != nil {
		s.LogDebug(ctx, "Membership check failed",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID),
			slog.String("error", err.Error()))
		return "", err
	}
	return role, nil
}
