package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auditlog"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/event"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/guest"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/notification"
	"gorm.io/gorm"
)

var (
	ErrAlreadyConfirmed = apperror.Conflict("guest already confirmed for this event")
	ErrUnknownReference = apperror.NotFound("event or guest not found")
)

type Service interface {
	Confirm(ctx context.Context, req AttendanceRequest, ip string) (*Link, error)
	Decline(ctx context.Context, req AttendanceRequest) error
	ListConfirmed(ctx context.Context, eventID, requesterID uint) ([]ConfirmedGuest, error)
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error
}

type service struct {
	db         *gorm.DB
	repo       Repository
	dispatcher notification.Dispatcher
	auditSvc   auditlog.Service
}

func NewService(db *gorm.DB, repo Repository, dispatcher notification.Dispatcher, auditSvc auditlog.Service) Service {
	return &service{db: db, repo: repo, dispatcher: dispatcher, auditSvc: auditSvc}
}

// ===========================
// ✅ Confirm
//
// The (event, guest) key is the duplicate check. The owner is notified
// after commit.
func (s *service) Confirm(ctx context.Context, req AttendanceRequest, ip string) (*Link, error) {
	link := &Link{EventID: req.EventID, GuestID: req.GuestID}
	var e event.Event
	var g guest.Guest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, link); err != nil {
			switch {
			case errors.Is(err, gorm.ErrDuplicatedKey):
				return ErrAlreadyConfirmed
			case errors.Is(err, gorm.ErrForeignKeyViolated):
				return ErrUnknownReference
			}
			return fmt.Errorf("create attendance link: %w", err)
		}

		if err := tx.WithContext(ctx).Select("id", "owner_id", "title").First(&e, req.EventID).Error; err != nil {
			return fmt.Errorf("load event %d: %w", req.EventID, err)
		}
		if err := tx.WithContext(ctx).Select("id", "name").First(&g, req.GuestID).Error; err != nil {
			return fmt.Errorf("load guest %d: %w", req.GuestID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(notification.Job{
			UserID:  e.OwnerID,
			Title:   "New guest confirmed",
			Message: fmt.Sprintf("%s confirmed presence at %s.", g.Name, e.Title),
		})
	}
	if s.auditSvc != nil {
		s.auditSvc.LogAction(ctx, &e.OwnerID, &e.ID, auditlog.ActionAttendanceConfirm,
			map[string]interface{}{"guest_id": g.ID}, ip, auditlog.StatusSuccess)
	}
	return link, nil
}

// Decline removes the link. Declining an unconfirmed pair is a no-op.
func (s *service) Decline(ctx context.Context, req AttendanceRequest) error {
	if err := s.repo.Delete(ctx, req.EventID, req.GuestID); err != nil {
		return fmt.Errorf("delete attendance link: %w", err)
	}
	return nil
}

// ListConfirmed is limited to the event owner; the list carries guest emails.
func (s *service) ListConfirmed(ctx context.Context, eventID, requesterID uint) ([]ConfirmedGuest, error) {
	if _, err := event.LoadOwned(ctx, s.db, eventID, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListConfirmed(ctx, eventID)
}

func (s *service) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error {
	if err := s.repo.WithTx(tx).DeleteByEvent(ctx, eventID); err != nil {
		return fmt.Errorf("delete attendance of event %d: %w", eventID, err)
	}
	return nil
}
