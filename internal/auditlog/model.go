package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionDonationRecorded  = "DONATION_RECORDED"
	ActionGoalReached       = "CAMPAIGN_GOAL_REACHED"
	ActionCampaignClosed    = "CAMPAIGN_CLOSED_MANUALLY"
	ActionCampaignsExpired  = "CAMPAIGNS_EXPIRED"
	ActionEventDeleted      = "EVENT_DELETED"
	ActionAttendanceConfirm = "ATTENDANCE_CONFIRMED"
	ActionDonationsExported = "DONATIONS_EXPORTED"
	ActionPixChargeCreated  = "PIX_CHARGE_CREATED"

	StatusSuccess = "success"
	StatusFailure = "failure"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"`  // nil for system actions (expiry sweep)
	EventID   *uint          `gorm:"index" json:"event_id"` // no FK: the trail outlives deleted events
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	Status    string         `gorm:"size:20;not null;index" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
