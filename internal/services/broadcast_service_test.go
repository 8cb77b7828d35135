package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/venturescope/venturescope-backend/internal/dispatch"
	"github.com/venturescope/venturescope-backend/internal/models"

	"gorm.io/gorm"
)

type fakeBroadcastStore struct {
	mu         sync.Mutex
	broadcasts map[string]*models.Broadcast
	nextID     int
}

func newFakeBroadcastStore() *fakeBroadcastStore {
	return &fakeBroadcastStore{broadcasts: map[string]*models.Broadcast{}}
}

func (s *fakeBroadcastStore) Create(b *models.Broadcast) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	if b.ID == "" {
		b.ID = fmt.Sprintf("bc-%d", s.nextID)
	}
	cp := *b
	s.broadcasts[b.ID] = &cp
	return nil
}

func (s *fakeBroadcastStore) GetByID(id string) (*models.Broadcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.broadcasts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBroadcastStore) List(offset, limit int) ([]models.Broadcast, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Broadcast, 0, len(s.broadcasts))
	for _, b := range s.broadcasts {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (s *fakeBroadcastStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.broadcasts, id)
	return nil
}

func (s *fakeBroadcastStore) UpdateProgress(id string, success, failure int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.broadcasts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.SuccessCount = success
	b.FailureCount = failure
	return nil
}

func (s *fakeBroadcastStore) Finalize(id string, status models.CampaignStatus, success, failure int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.broadcasts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = status
	b.SuccessCount = success
	b.FailureCount = failure
	return nil
}

type fakeSubscriptionSource struct {
	mu       sync.Mutex
	subs     []models.WhatsAppSubscription
	stamped  []string
	stampErr error
}

func (s *fakeSubscriptionSource) ActiveSubscriptions() ([]models.WhatsAppSubscription, error) {
	return s.subs, nil
}

func (s *fakeSubscriptionSource) ActiveSubscriptionsByIDs(ids []string) ([]models.WhatsAppSubscription, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.WhatsAppSubscription
	for _, sub := range s.subs {
		if want[sub.ID] {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *fakeSubscriptionSource) StampLastSent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stampErr != nil {
		return s.stampErr
	}
	s.stamped = append(s.stamped, id)
	return nil
}

func testSubs() []models.WhatsAppSubscription {
	return []models.WhatsAppSubscription{
		{ID: "s1", Phone: "919876500001", Name: "Asha", OptOutToken: "opt-1"},
		{ID: "s2", Phone: "919876500002", OptOutToken: "opt-2"},
	}
}

func TestBroadcastCreateAndSend(t *testing.T) {
	store := newFakeBroadcastStore()
	subs := &fakeSubscriptionSource{subs: testSubs()}
	sender := &recordingSender{}
	svc := NewBroadcastService(store, subs, sender, dispatch.NopPacer{}, "https://example.com")

	b, resp, done, err := svc.Create(context.Background(), "admin-1", &models.CreateBroadcastRequest{
		Message: "New grants announced this week",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !resp.Accepted || resp.RecipientCount != 2 {
		t.Fatalf("trigger response = %+v", resp)
	}
	if b.Status != models.CampaignStatusSending || b.RecipientCount != 2 {
		t.Fatalf("broadcast stored as %+v, want sending with 2 recipients", b)
	}

	awaitSummary(t, done)

	final, _ := store.GetByID(b.ID)
	if final.Status != models.CampaignStatusCompleted {
		t.Errorf("status = %s, want completed", final.Status)
	}
	if final.SuccessCount != 2 || final.FailureCount != 0 {
		t.Errorf("counters = %d/%d", final.SuccessCount, final.FailureCount)
	}

	// Successful deliveries stamp the subscription.
	if len(subs.stamped) != 2 {
		t.Errorf("stamped = %v, want both subscriptions", subs.stamped)
	}

	if !strings.Contains(sender.bodies[0], "Hi Asha,") {
		t.Errorf("body[0] missing greeting: %s", sender.bodies[0])
	}
	if !strings.Contains(sender.bodies[1], "token=opt-2") {
		t.Errorf("body[1] missing opt-out token: %s", sender.bodies[1])
	}
}

func TestBroadcastSendOutlivesTriggerContext(t *testing.T) {
	store := newFakeBroadcastStore()
	subs := &fakeSubscriptionSource{subs: testSubs()}
	sender := &recordingSender{}
	svc := NewBroadcastService(store, subs, sender, dispatch.NewIntervalPacer(10*time.Millisecond), "https://example.com")

	// The HTTP server cancels the request context as soon as the 202 is
	// written; the detached loop must keep delivering anyway.
	ctx, cancel := context.WithCancel(context.Background())
	b, _, done, err := svc.Create(ctx, "admin-1", &models.CreateBroadcastRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cancel()

	sum := awaitSummary(t, done)
	if sum.Success != 2 || sum.Failure != 0 {
		t.Fatalf("summary = %+v, want both delivered", sum)
	}
	if len(sender.targets) != 2 {
		t.Fatalf("provider invoked %d times, want 2", len(sender.targets))
	}

	final, _ := store.GetByID(b.ID)
	if final.Status != models.CampaignStatusCompleted {
		t.Errorf("status = %s, want completed", final.Status)
	}
	if final.SuccessCount+final.FailureCount != final.RecipientCount {
		t.Errorf("counters %d+%d do not add up to %d recipients",
			final.SuccessCount, final.FailureCount, final.RecipientCount)
	}
}

func TestBroadcastCreateNoRecipients(t *testing.T) {
	store := newFakeBroadcastStore()
	svc := NewBroadcastService(store, &fakeSubscriptionSource{}, &recordingSender{}, dispatch.NopPacer{}, "https://example.com")

	b, resp, done, err := svc.Create(context.Background(), "admin-1", &models.CreateBroadcastRequest{Message: "hello"})
	if !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("err = %v, want ErrNoRecipients", err)
	}
	if done != nil {
		t.Error("no dispatch loop should start for an empty snapshot")
	}
	if resp.Accepted || resp.RecipientCount != 0 {
		t.Errorf("trigger response = %+v", resp)
	}

	// The record still exists, already failed, for the audit trail.
	final, getErr := store.GetByID(b.ID)
	if getErr != nil {
		t.Fatalf("broadcast record not stored: %v", getErr)
	}
	if final.Status != models.CampaignStatusFailed || final.RecipientCount != 0 {
		t.Errorf("stored broadcast = %+v, want failed with 0 recipients", final)
	}
}

func TestBroadcastCreateSubset(t *testing.T) {
	store := newFakeBroadcastStore()
	subs := &fakeSubscriptionSource{subs: testSubs()}
	sender := &recordingSender{}
	svc := NewBroadcastService(store, subs, sender, dispatch.NopPacer{}, "https://example.com")

	_, resp, done, err := svc.Create(context.Background(), "admin-1", &models.CreateBroadcastRequest{
		Message:         "targeted update",
		SubscriptionIDs: []string{"s2"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.RecipientCount != 1 {
		t.Fatalf("recipient count = %d, want 1", resp.RecipientCount)
	}
	awaitSummary(t, done)

	if len(sender.targets) != 1 || sender.targets[0] != "919876500002" {
		t.Errorf("targets = %v, want only the requested subscription", sender.targets)
	}
}

func TestBroadcastAllFailuresFails(t *testing.T) {
	store := newFakeBroadcastStore()
	sender := &recordingSender{failFor: map[string]error{
		"919876500001": errors.New("not on whatsapp"),
		"919876500002": errors.New("not on whatsapp"),
	}}
	subs := &fakeSubscriptionSource{subs: testSubs()}
	svc := NewBroadcastService(store, subs, sender, dispatch.NopPacer{}, "https://example.com")

	b, _, done, err := svc.Create(context.Background(), "admin-1", &models.CreateBroadcastRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	awaitSummary(t, done)

	final, _ := store.GetByID(b.ID)
	if final.Status != models.CampaignStatusFailed {
		t.Errorf("status = %s, want failed", final.Status)
	}
	if len(subs.stamped) != 0 {
		t.Errorf("stamped = %v, want none for failed deliveries", subs.stamped)
	}
}

func TestBroadcastDeleteRefusedWhileSending(t *testing.T) {
	store := newFakeBroadcastStore()
	store.Create(&models.Broadcast{ID: "bc-x", Status: models.CampaignStatusSending})

	svc := NewBroadcastService(store, &fakeSubscriptionSource{}, &recordingSender{}, dispatch.NopPacer{}, "https://example.com")

	if err := svc.Delete("bc-x"); !errors.Is(err, ErrNotSendable) {
		t.Errorf("err = %v, want refusal while sending", err)
	}

	store.Finalize("bc-x", models.CampaignStatusCompleted, 1, 0)
	if err := svc.Delete("bc-x"); err != nil {
		t.Errorf("Delete after completion: %v", err)
	}
}
