package event

import (
	"context"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/guest"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{DB: tx}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(ctx context.Context, e *Event) error {
	return r.DB.WithContext(ctx).Omit("Owner").Create(e).Error
}

// ===========================
// 🔍 Get Event By ID
func (r *Repository) GetEventByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	if err := r.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 📄 List
func (r *Repository) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.DB.WithContext(ctx).Order("event_date ASC").Find(&events).Error
	return events, err
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID uint) ([]Event, error) {
	var events []Event
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("event_date DESC").
		Find(&events).Error
	return events, err
}

// ListByGuestEmail returns the events a guest email was invited to.
func (r *Repository) ListByGuestEmail(ctx context.Context, email string) ([]Event, error) {
	var events []Event
	err := r.DB.WithContext(ctx).
		Table("events e").
		Select("e.*").
		Joins("JOIN invitations i ON i.event_id = e.id").
		Joins("JOIN guests g ON g.id = i.guest_id").
		Where("LOWER(g.email) = LOWER(?)", email).
		Order("e.event_date ASC").
		Scan(&events).Error
	return events, err
}

// ===========================
// ✉️ Invitations
func (r *Repository) CreateInvitation(ctx context.Context, inv *Invitation) error {
	return r.DB.WithContext(ctx).Omit("Event", "Guest").Create(inv).Error
}

func (r *Repository) DeleteInvitation(ctx context.Context, eventID, guestID uint) error {
	return r.DB.WithContext(ctx).
		Where("event_id = ? AND guest_id = ?", eventID, guestID).
		Delete(&Invitation{}).Error
}

func (r *Repository) ListInvitedGuests(ctx context.Context, eventID uint) ([]guest.Guest, error) {
	var guests []guest.Guest
	err := r.DB.WithContext(ctx).
		Joins("JOIN invitations i ON i.guest_id = guests.id").
		Where("i.event_id = ?", eventID).
		Order("guests.name ASC").
		Find(&guests).Error
	return guests, err
}

// ===========================
// ❌ Delete Event
func (r *Repository) DeleteInvitationsByEvent(ctx context.Context, eventID uint) error {
	return r.DB.WithContext(ctx).Where("event_id = ?", eventID).Delete(&Invitation{}).Error
}

func (r *Repository) DeleteEvent(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&Event{}, id).Error
}
