package services

import (
	"context"
	"fmt"

	"github.com/venturescope/venturescope-backend/internal/dispatch"
	"github.com/venturescope/venturescope-backend/internal/models"
)

// BroadcastStore is the slice of the broadcast repository the service needs.
type BroadcastStore interface {
	Create(b *models.Broadcast) error
	GetByID(id string) (*models.Broadcast, error)
	List(offset, limit int) ([]models.Broadcast, int64, error)
	Delete(id string) error
	UpdateProgress(id string, success, failure int) error
	Finalize(id string, status models.CampaignStatus, success, failure int) error
}

// BroadcastRecipientSource resolves the active subscription population.
type BroadcastRecipientSource interface {
	ActiveSubscriptions() ([]models.WhatsAppSubscription, error)
	ActiveSubscriptionsByIDs(ids []string) ([]models.WhatsAppSubscription, error)
	StampLastSent(id string) error
}

type BroadcastService struct {
	broadcasts    BroadcastStore
	subscriptions BroadcastRecipientSource
	sender        dispatch.Sender
	pacer         dispatch.Pacer
	publicBaseURL string
}

func NewBroadcastService(
	broadcasts BroadcastStore,
	subscriptions BroadcastRecipientSource,
	sender dispatch.Sender,
	pacer dispatch.Pacer,
	publicBaseURL string,
) *BroadcastService {
	return &BroadcastService{
		broadcasts:    broadcasts,
		subscriptions: subscriptions,
		sender:        sender,
		pacer:         pacer,
		publicBaseURL: publicBaseURL,
	}
}

// Create creates a broadcast and immediately triggers delivery. Broadcasts
// have no draft stage: the record is stored in sending and the dispatch loop
// detaches before the call returns. With zero resolvable recipients the record
// is stored already failed and the trigger is rejected.
func (s *BroadcastService) Create(ctx context.Context, initiatorID string, req *models.CreateBroadcastRequest) (*models.Broadcast, *models.TriggerResponse, <-chan dispatch.Summary, error) {
	recipients, err := s.resolveRecipients(req)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}

	b := &models.Broadcast{
		Message:        req.Message,
		InitiatorID:    initiatorID,
		Status:         models.CampaignStatusSending,
		RecipientCount: len(recipients),
	}
	if len(recipients) == 0 {
		b.Status = models.CampaignStatusFailed
	}
	if err := s.broadcasts.Create(b); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create broadcast: %w", err)
	}

	if len(recipients) == 0 {
		return b, &models.TriggerResponse{Accepted: false, RecipientCount: 0, Message: "no active subscriptions"}, nil, ErrNoRecipients
	}

	message := req.Message
	// The loop must outlive the trigger request, so the request context's
	// cancellation is stripped before the handoff.
	done := dispatch.Run(context.WithoutCancel(ctx), dispatch.Job{
		CampaignID: b.ID,
		Kind:       "broadcast",
		Recipients: recipients,
		Render: func(r dispatch.Recipient) dispatch.Message {
			return dispatch.Message{Body: s.renderBody(message, r)}
		},
		Sender:  s.sender,
		Tracker: &broadcastTracker{store: s.broadcasts, subscriptions: s.subscriptions, id: b.ID},
		Pacer:   s.pacer,
	})

	return b, &models.TriggerResponse{
		Accepted:       true,
		RecipientCount: len(recipients),
		Message:        fmt.Sprintf("sending to %d subscriptions", len(recipients)),
	}, done, nil
}

// GetByID retrieves a broadcast
func (s *BroadcastService) GetByID(id string) (*models.Broadcast, error) {
	return s.broadcasts.GetByID(id)
}

// List returns broadcasts with pagination
func (s *BroadcastService) List(offset, limit int) ([]models.Broadcast, int64, error) {
	return s.broadcasts.List(offset, limit)
}

// Delete deletes a broadcast. Deletion is refused while a send is in flight.
func (s *BroadcastService) Delete(id string) error {
	b, err := s.broadcasts.GetByID(id)
	if err != nil {
		return err
	}
	if b.Status == models.CampaignStatusSending {
		return ErrNotSendable
	}
	return s.broadcasts.Delete(id)
}

func (s *BroadcastService) resolveRecipients(req *models.CreateBroadcastRequest) ([]dispatch.Recipient, error) {
	var (
		subs []models.WhatsAppSubscription
		err  error
	)
	if len(req.SubscriptionIDs) > 0 {
		subs, err = s.subscriptions.ActiveSubscriptionsByIDs(req.SubscriptionIDs)
	} else {
		subs, err = s.subscriptions.ActiveSubscriptions()
	}
	if err != nil {
		return nil, err
	}

	recipients := make([]dispatch.Recipient, 0, len(subs))
	for _, sub := range subs {
		recipients = append(recipients, dispatch.Recipient{
			ID:          sub.ID,
			Target:      sub.Phone,
			Name:        sub.Name,
			OptOutToken: sub.OptOutToken,
		})
	}
	return recipients, nil
}

func (s *BroadcastService) renderBody(message string, r dispatch.Recipient) string {
	greeting := "Hi there,"
	if r.Name != "" {
		greeting = "Hi " + r.Name + ","
	}
	optOut := fmt.Sprintf("%s/api/v1/whatsapp/opt-out?token=%s", s.publicBaseURL, r.OptOutToken)
	return fmt.Sprintf("%s\n\n%s\n\nStop receiving updates: %s", greeting, message, optOut)
}

// broadcastTracker adapts the broadcast repository to the dispatch engine and
// stamps subscriptions on successful delivery.
type broadcastTracker struct {
	store         BroadcastStore
	subscriptions BroadcastRecipientSource
	id            string
}

func (t *broadcastTracker) Progress(_ context.Context, success, failure int) error {
	return t.store.UpdateProgress(t.id, success, failure)
}

func (t *broadcastTracker) Delivered(_ context.Context, r dispatch.Recipient, _ string) error {
	return t.subscriptions.StampLastSent(r.ID)
}

func (t *broadcastTracker) Finalize(_ context.Context, sum dispatch.Summary) error {
	status := models.CampaignStatusCompleted
	if sum.Success == 0 {
		status = models.CampaignStatusFailed
	}
	return t.store.Finalize(t.id, status, sum.Success, sum.Failure)
}
