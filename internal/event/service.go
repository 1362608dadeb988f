package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/auditlog"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/guest"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound   = apperror.NotFound("event not found")
	ErrNotEventOwner   = apperror.Forbidden("only the event owner can do this")
	ErrInvalidDate     = apperror.Validation("invalid event_date/event_time, use YYYY-MM-DD and HH:MM")
	ErrNegativeGoal    = apperror.Validation("campaign goal must not be negative")
	ErrAlreadyInvited  = apperror.Conflict("guest already invited")
	ErrUnknownEventRef = apperror.Validation("event owner does not exist")
)

// CampaignOpener creates the event's fundraising campaign inside the event transaction.
type CampaignOpener interface {
	OpenForEvent(ctx context.Context, tx *gorm.DB, eventID uint, goal decimal.Decimal, pixKey string) error
}

// Dependent removes rows that reference an event. Dependents run in order,
// inside the delete transaction, before the event row goes.
type Dependent interface {
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error
}

type Mailer interface {
	Send(to, subject, body string) error
}

// Service wraps business logic for events and their invitations
type Service struct {
	Repo       *Repository
	AuditSvc   auditlog.Service
	Campaigns  CampaignOpener
	Dependents []Dependent
	Mailer     Mailer
}

func NewService(r *Repository, auditSvc auditlog.Service, campaigns CampaignOpener, mailer Mailer, dependents ...Dependent) *Service {
	return &Service{
		Repo:       r,
		AuditSvc:   auditSvc,
		Campaigns:  campaigns,
		Dependents: dependents,
		Mailer:     mailer,
	}
}

// LoadOwned fetches an event and checks that userID owns it.
func LoadOwned(ctx context.Context, db *gorm.DB, eventID, userID uint) (*Event, error) {
	var e Event
	if err := db.WithContext(ctx).First(&e, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("load event %d: %w", eventID, err)
	}
	if e.OwnerID != userID {
		return nil, ErrNotEventOwner
	}
	return &e, nil
}

// ===========================
// 🎯 Create Event
//
// Event, invitations and the optional campaign are written in one transaction.
func (s *Service) CreateEvent(ctx context.Context, ownerID uint, req *CreateEventRequest) (*Event, error) {
	eventDate, err := parseEventDate(req.EventDate, req.EventTime)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if req.Campaign != nil && req.Campaign.Goal.IsNegative() {
		return nil, ErrNegativeGoal
	}

	e := &Event{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		EventDate:   eventDate,
	}

	var invited []guest.Guest
	err = s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.Repo.WithTx(tx)
		if err := repo.CreateEvent(ctx, e); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ErrUnknownEventRef
			}
			return fmt.Errorf("create event: %w", err)
		}

		guestRepo := guest.NewRepositoryTx(tx)
		for _, email := range uniqueEmails(req.Guests) {
			g, _, err := guest.FindOrCreate(ctx, guestRepo, email, "")
			if err != nil {
				return err
			}
			if err := repo.CreateInvitation(ctx, &Invitation{EventID: e.ID, GuestID: g.ID}); err != nil {
				return fmt.Errorf("invite %s: %w", email, err)
			}
			invited = append(invited, *g)
		}

		if wantsCampaign(req.Campaign) && s.Campaigns != nil {
			if err := s.Campaigns.OpenForEvent(ctx, tx, e.ID, req.Campaign.Goal, req.Campaign.PixKey); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendInvites(e, invited)
	return e, nil
}

// ===========================
// 🔍 Reads
func (s *Service) GetEvent(ctx context.Context, id uint) (*Event, error) {
	e, err := s.Repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	return s.Repo.ListEvents(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID uint) ([]Event, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *Service) ListInvitations(ctx context.Context, email string) ([]Event, error) {
	return s.Repo.ListByGuestEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) ListGuests(ctx context.Context, eventID uint) ([]guest.Guest, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.Repo.ListInvitedGuests(ctx, eventID)
}

// ===========================
// ✉️ Invitations
func (s *Service) InviteGuest(ctx context.Context, eventID, requesterID uint, req InviteRequest) (*guest.Guest, error) {
	e, err := LoadOwned(ctx, s.Repo.DB, eventID, requesterID)
	if err != nil {
		return nil, err
	}

	var g *guest.Guest
	err = s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		g, _, err = guest.FindOrCreate(ctx, guest.NewRepositoryTx(tx), req.Email, req.Name)
		if err != nil {
			return err
		}
		if err := s.Repo.WithTx(tx).CreateInvitation(ctx, &Invitation{EventID: e.ID, GuestID: g.ID}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyInvited
			}
			return fmt.Errorf("create invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendInvites(e, []guest.Guest{*g})
	return g, nil
}

// RemoveGuest is idempotent: removing a guest that was never invited succeeds.
func (s *Service) RemoveGuest(ctx context.Context, eventID, requesterID, guestID uint) error {
	if _, err := LoadOwned(ctx, s.Repo.DB, eventID, requesterID); err != nil {
		return err
	}
	return s.Repo.DeleteInvitation(ctx, eventID, guestID)
}

// ===========================
// ❌ Delete Event (cascading)
func (s *Service) DeleteEvent(ctx context.Context, eventID, requesterID uint, ip string) error {
	e, err := LoadOwned(ctx, s.Repo.DB, eventID, requesterID)
	if err != nil {
		return err
	}

	err = s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dep := range s.Dependents {
			if err := dep.DeleteByEvent(ctx, tx, eventID); err != nil {
				return err
			}
		}
		repo := s.Repo.WithTx(tx)
		if err := repo.DeleteInvitationsByEvent(ctx, eventID); err != nil {
			return fmt.Errorf("delete invitations: %w", err)
		}
		return repo.DeleteEvent(ctx, eventID)
	})

	status := auditlog.StatusSuccess
	if err != nil {
		status = auditlog.StatusFailure
	}
	if s.AuditSvc != nil {
		s.AuditSvc.LogAction(ctx, &requesterID, &eventID, auditlog.ActionEventDeleted,
			map[string]interface{}{"title": e.Title}, ip, status)
	}
	return err
}

// ===========================
// helpers
func (s *Service) sendInvites(e *Event, guests []guest.Guest) {
	if s.Mailer == nil {
		return
	}
	subject := fmt.Sprintf("You're invited: %s", e.Title)
	for _, g := range guests {
		body := fmt.Sprintf("Hi %s,\n\nYou have been invited to \"%s\" on %s at %s.\n",
			g.Name, e.Title, e.EventDate.Format("02/01/2006 15:04"), e.Location)
		if err := s.Mailer.Send(g.Email, subject, body); err != nil {
			utils.Log.Warn("invite email failed", zap.Uint("event_id", e.ID), zap.String("to", g.Email), zap.Error(err))
		}
	}
}

func parseEventDate(date, clock string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(clock) == "" {
		return day, nil
	}
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func uniqueEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func wantsCampaign(c *CampaignRequest) bool {
	return c != nil && (c.Goal.IsPositive() || strings.TrimSpace(c.PixKey) != "")
}
