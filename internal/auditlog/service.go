package auditlog

import (
	"context"
	"encoding/json"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type Service interface {
	LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string)
	ListMine(ctx context.Context, userID uint, action string, limit int) ([]AuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction writes an audit entry. The trail is best-effort: failures are logged, never returned.
func (s *service) LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Details:   datatypes.JSON(detailsJSON),
		IPAddress: ip,
		Status:    status,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		utils.Log.Error("❌ audit log write failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *service) ListMine(ctx context.Context, userID uint, action string, limit int) ([]AuditLog, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.repo.ListByUser(ctx, userID, action, limit)
}
