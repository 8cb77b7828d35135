package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/venturescope/venturescope-backend/internal/dispatch"
	"github.com/venturescope/venturescope-backend/internal/models"
)

// ErrNoRecipients is returned when recipient resolution yields an empty
// snapshot; the campaign is finalized failed synchronously and no dispatch
// loop starts.
var ErrNoRecipients = errors.New("no eligible recipients")

// ErrNotSendable is returned when a campaign is not in a sendable state.
var ErrNotSendable = errors.New("campaign cannot be sent in its current status")

// NewsletterStore is the slice of the newsletter repository the service needs.
type NewsletterStore interface {
	Create(n *models.Newsletter) error
	GetByID(id string) (*models.Newsletter, error)
	List(offset, limit int) ([]models.Newsletter, int64, error)
	Update(n *models.Newsletter) error
	Delete(id string) error
	MarkSending(id string, recipientCount int) error
	UpdateProgress(id string, success, failure int) error
	Finalize(id string, status models.CampaignStatus, success, failure int) error
}

// NewsletterRecipientSource resolves the eligible subscriber population.
type NewsletterRecipientSource interface {
	EligibleNewsletterRecipients() ([]models.User, error)
	EligibleNewsletterRecipientsByIDs(ids []string) ([]models.User, error)
}

type NewsletterService struct {
	newsletters   NewsletterStore
	users         NewsletterRecipientSource
	sender        dispatch.Sender
	pacer         dispatch.Pacer
	publicBaseURL string
}

func NewNewsletterService(
	newsletters NewsletterStore,
	users NewsletterRecipientSource,
	sender dispatch.Sender,
	pacer dispatch.Pacer,
	publicBaseURL string,
) *NewsletterService {
	return &NewsletterService{
		newsletters:   newsletters,
		users:         users,
		sender:        sender,
		pacer:         pacer,
		publicBaseURL: publicBaseURL,
	}
}

// Create creates a newsletter draft
func (s *NewsletterService) Create(initiatorID string, req *models.CreateNewsletterRequest) (*models.Newsletter, error) {
	n := &models.Newsletter{
		Subject:     req.Subject,
		BodyHTML:    req.BodyHTML,
		InitiatorID: initiatorID,
		Status:      models.CampaignStatusDraft,
	}
	if err := s.newsletters.Create(n); err != nil {
		return nil, fmt.Errorf("failed to create newsletter: %w", err)
	}
	return n, nil
}

// GetByID retrieves a newsletter
func (s *NewsletterService) GetByID(id string) (*models.Newsletter, error) {
	return s.newsletters.GetByID(id)
}

// List returns newsletters with pagination
func (s *NewsletterService) List(offset, limit int) ([]models.Newsletter, int64, error) {
	return s.newsletters.List(offset, limit)
}

// Update updates a newsletter draft. Only drafts are editable.
func (s *NewsletterService) Update(id string, req *models.UpdateNewsletterRequest) (*models.Newsletter, error) {
	n, err := s.newsletters.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n.Status != models.CampaignStatusDraft {
		return nil, ErrNotSendable
	}
	n.Subject = req.Subject
	n.BodyHTML = req.BodyHTML
	if err := s.newsletters.Update(n); err != nil {
		return nil, fmt.Errorf("failed to update newsletter: %w", err)
	}
	return n, nil
}

// Delete deletes a newsletter. Deletion is refused while a send is in flight.
func (s *NewsletterService) Delete(id string) error {
	n, err := s.newsletters.GetByID(id)
	if err != nil {
		return err
	}
	if n.Status == models.CampaignStatusSending {
		return ErrNotSendable
	}
	return s.newsletters.Delete(id)
}

// Send resolves the recipient snapshot, flips the newsletter to sending and
// detaches the dispatch loop. It returns as soon as the loop is started; the
// returned channel reports the run's summary and is awaited only by tests.
func (s *NewsletterService) Send(ctx context.Context, id string, req *models.SendNewsletterRequest) (*models.TriggerResponse, <-chan dispatch.Summary, error) {
	n, err := s.newsletters.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if n.Status != models.CampaignStatusDraft {
		return nil, nil, ErrNotSendable
	}

	recipients, err := s.resolveRecipients(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}

	if len(recipients) == 0 {
		if err := s.newsletters.MarkSending(id, 0); err != nil {
			return nil, nil, err
		}
		if err := s.newsletters.Finalize(id, models.CampaignStatusFailed, 0, 0); err != nil {
			return nil, nil, err
		}
		return &models.TriggerResponse{Accepted: false, RecipientCount: 0, Message: "no eligible recipients"}, nil, ErrNoRecipients
	}

	if err := s.newsletters.MarkSending(id, len(recipients)); err != nil {
		return nil, nil, err
	}

	subject := n.Subject
	body := n.BodyHTML
	// The loop must outlive the trigger request, so the request context's
	// cancellation is stripped before the handoff.
	done := dispatch.Run(context.WithoutCancel(ctx), dispatch.Job{
		CampaignID: n.ID,
		Kind:       "newsletter",
		Recipients: recipients,
		Render: func(r dispatch.Recipient) dispatch.Message {
			return dispatch.Message{
				Subject: subject,
				Body:    s.renderBody(body, r),
			}
		},
		Sender:  s.sender,
		Tracker: &newsletterTracker{store: s.newsletters, id: n.ID},
		Pacer:   s.pacer,
	})

	return &models.TriggerResponse{
		Accepted:       true,
		RecipientCount: len(recipients),
		Message:        fmt.Sprintf("sending to %d recipients", len(recipients)),
	}, done, nil
}

// resolveRecipients takes the one-time snapshot per the trigger request:
// either the full eligible population or an explicit subset filtered to
// currently-eligible users. Order is storage order.
func (s *NewsletterService) resolveRecipients(req *models.SendNewsletterRequest) ([]dispatch.Recipient, error) {
	var (
		users []models.User
		err   error
	)
	if req != nil && len(req.UserIDs) > 0 {
		users, err = s.users.EligibleNewsletterRecipientsByIDs(req.UserIDs)
	} else {
		users, err = s.users.EligibleNewsletterRecipients()
	}
	if err != nil {
		return nil, err
	}

	recipients := make([]dispatch.Recipient, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, dispatch.Recipient{
			ID:          u.ID,
			Target:      u.Email,
			Name:        u.FullName,
			OptOutToken: u.UnsubscribeToken,
		})
	}
	return recipients, nil
}

func (s *NewsletterService) renderBody(body string, r dispatch.Recipient) string {
	greeting := "Hi there,"
	if r.Name != "" {
		greeting = "Hi " + r.Name + ","
	}
	unsubscribe := fmt.Sprintf("%s/api/v1/newsletter/unsubscribe?token=%s", s.publicBaseURL, r.OptOutToken)
	return fmt.Sprintf(`<p>%s</p>%s<p><a href="%s">Unsubscribe</a></p>`, greeting, body, unsubscribe)
}

// newsletterTracker adapts the newsletter repository to the dispatch engine.
type newsletterTracker struct {
	store NewsletterStore
	id    string
}

func (t *newsletterTracker) Progress(_ context.Context, success, failure int) error {
	return t.store.UpdateProgress(t.id, success, failure)
}

func (t *newsletterTracker) Delivered(context.Context, dispatch.Recipient, string) error {
	// Email has no per-recipient bookkeeping beyond the counters.
	return nil
}

func (t *newsletterTracker) Finalize(_ context.Context, sum dispatch.Summary) error {
	status := models.CampaignStatusCompleted
	if sum.Success == 0 {
		status = models.CampaignStatusFailed
	}
	return t.store.Finalize(t.id, status, sum.Success, sum.Failure)
}
