package audit

import (
	"context"

	"go.uber.org/zap"

	"solarops/internal/domain"
	"solarops/internal/repository"
)

// Logger records externally visible mutations. Failures are logged and
// swallowed: an audit miss must never fail the business operation.
type Logger struct {
	repo *repository.UserLogRepository
	log  *zap.Logger
}

func New(repo *repository.UserLogRepository, log *zap.Logger) *Logger {
	return &Logger{repo: repo, log: log}
}

func (l *Logger) LogUserAction(ctx context.Context, userEmail, action, entityName string, entityID int64, details, ipAddress string) {
	entry := &domain.UserLog{
		UserEmail:  userEmail,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  ipAddress,
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		l.log.Error("write audit log",
			zap.String("user", userEmail),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
