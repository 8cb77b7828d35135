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

type fakeNewsletterStore struct {
	mu          sync.Mutex
	newsletters map[string]*models.Newsletter
	nextID      int
}

func newFakeNewsletterStore() *fakeNewsletterStore {
	return &fakeNewsletterStore{newsletters: map[string]*models.Newsletter{}}
}

func (s *fakeNewsletterStore) Create(n *models.Newsletter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	if n.ID == "" {
		n.ID = fmt.Sprintf("nl-%d", s.nextID)
	}
	cp := *n
	s.newsletters[n.ID] = &cp
	return nil
}

func (s *fakeNewsletterStore) GetByID(id string) (*models.Newsletter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.newsletters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *fakeNewsletterStore) List(offset, limit int) ([]models.Newsletter, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Newsletter, 0, len(s.newsletters))
	for _, n := range s.newsletters {
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (s *fakeNewsletterStore) Update(n *models.Newsletter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.newsletters[n.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *n
	s.newsletters[n.ID] = &cp
	return nil
}

func (s *fakeNewsletterStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.newsletters, id)
	return nil
}

func (s *fakeNewsletterStore) MarkSending(id string, recipientCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.newsletters[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Status = models.CampaignStatusSending
	n.RecipientCount = recipientCount
	return nil
}

func (s *fakeNewsletterStore) UpdateProgress(id string, success, failure int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.newsletters[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.SuccessCount = success
	n.FailureCount = failure
	return nil
}

func (s *fakeNewsletterStore) Finalize(id string, status models.CampaignStatus, success, failure int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.newsletters[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Status = status
	n.SuccessCount = success
	n.FailureCount = failure
	return nil
}

type fakeUserSource struct {
	users []models.User
}

func (s *fakeUserSource) EligibleNewsletterRecipients() ([]models.User, error) {
	return s.users, nil
}

func (s *fakeUserSource) EligibleNewsletterRecipientsByIDs(ids []string) ([]models.User, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.User
	for _, u := range s.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

type recordingSender struct {
	mu      sync.Mutex
	targets []string
	bodies  []string
	failFor map[string]error
}

func (s *recordingSender) Send(_ context.Context, target string, msg dispatch.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = append(s.targets, target)
	s.bodies = append(s.bodies, msg.Body)
	if err, ok := s.failFor[target]; ok {
		return "", err
	}
	return "id-" + target, nil
}

func testUsers() []models.User {
	return []models.User{
		{ID: "u1", Email: "a@example.com", FullName: "Alice", UnsubscribeToken: "tok-a"},
		{ID: "u2", Email: "b@example.com", FullName: "Bob", UnsubscribeToken: "tok-b"},
		{ID: "u3", Email: "c@example.com", UnsubscribeToken: "tok-c"},
	}
}

func awaitSummary(t *testing.T, done <-chan dispatch.Summary) dispatch.Summary {
	t.Helper()
	select {
	case sum := <-done:
		return sum
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not finish")
		return dispatch.Summary{}
	}
}

func TestNewsletterSendHappyPath(t *testing.T) {
	store := newFakeNewsletterStore()
	sender := &recordingSender{}
	svc := NewNewsletterService(store, &fakeUserSource{users: testUsers()}, sender, dispatch.NopPacer{}, "https://example.com")

	n, err := svc.Create("admin-1", &models.CreateNewsletterRequest{
		Subject:  "October digest",
		BodyHTML: "<p>news</p>",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, done, err := svc.Send(context.Background(), n.ID, nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !resp.Accepted || resp.RecipientCount != 3 {
		t.Fatalf("trigger response = %+v", resp)
	}

	sum := awaitSummary(t, done)
	if sum.Success != 3 || sum.Failure != 0 {
		t.Fatalf("summary = %+v", sum)
	}

	final, _ := store.GetByID(n.ID)
	if final.Status != models.CampaignStatusCompleted {
		t.Errorf("status = %s, want completed", final.Status)
	}
	if final.RecipientCount != 3 || final.SuccessCount != 3 || final.FailureCount != 0 {
		t.Errorf("counters = %d/%d/%d", final.RecipientCount, final.SuccessCount, final.FailureCount)
	}

	// Rendered bodies carry the personalized greeting and unsubscribe link.
	if !strings.Contains(sender.bodies[0], "Hi Alice,") {
		t.Errorf("body[0] missing greeting: %s", sender.bodies[0])
	}
	if !strings.Contains(sender.bodies[2], "Hi there,") {
		t.Errorf("body[2] should fall back to a generic greeting: %s", sender.bodies[2])
	}
	if !strings.Contains(sender.bodies[1], "token=tok-b") {
		t.Errorf("body[1] missing unsubscribe token: %s", sender.bodies[1])
	}
}

func TestNewsletterSendPartialFailureCompletes(t *testing.T) {
	store := newFakeNewsletterStore()
	sender := &recordingSender{failFor: map[string]error{"b@example.com": errors.New("bounced")}}
	svc := NewNewsletterService(store, &fakeUserSource{users: testUsers()}, sender, dispatch.NopPacer{}, "https://example.com")

	n, _ := svc.Create("admin-1", &models.CreateNewsletterRequest{Subject: "s", BodyHTML: "<p>b</p>"})
	_, done, err := svc.Send(context.Background(), n.ID, nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	awaitSummary(t, done)

	final, _ := store.GetByID(n.ID)
	if final.Status != models.CampaignStatusCompleted {
		t.Errorf("status = %s, want completed for partial failure", final.Status)
	}
	if final.SuccessCount != 2 || final.FailureCount != 1 {
		t.Errorf("counters = %d/%d, want 2/1", final.SuccessCount, final.FailureCount)
	}
}

func TestNewsletterSendAllFailuresFails(t *testing.T) {
	store := newFakeNewsletterStore()
	sender := &recordingSender{failFor: map[string]error{
		"a@example.com": errors.New("down"),
		"b@example.com": errors.New("down"),
		"c@example.com": errors.New("down"),
	}}
	svc := NewNewsletterService(store, &fakeUserSource{users: testUsers()}, sender, dispatch.NopPacer{}, "https://example.com")

	n, _ := svc.Create("admin-1", &models.CreateNewsletterRequest{Subject: "s", BodyHTML: "<p>b</p>"})
	_, done, err := svc.Send(context.Background(), n.ID, nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	awaitSummary(t, done)

	final, _ := store.GetByID(n.ID)
	if final.Status != models.CampaignStatusFailed {
		t.Errorf("status = %s, want failed when nothing delivered", final.Status)
	}
}

func TestNewsletterSendNoRecipients(t *testing.T) {
	store := newFakeNewsletterStore()
	svc := NewNewsletterService(store, &fakeUserSource{}, &recordingSender{}, dispatch.NopPacer{}, "https://example.com")

	n, _ := svc.Create("admin-1", &models.CreateNewsletterRequest{Subject: "s", BodyHTML: "<p>b</p>"})
	resp, done, err := svc.Send(context.Background(), n.ID, nil)
	if !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("err = %v, want ErrNoRecipients", err)
	}
	if done != nil {
		t.Error("no dispatch loop should start for an empty snapshot")
	}
	if resp == nil || resp.Accepted || resp.RecipientCount != 0 {
		t.Errorf("trigger response = %+v", resp)
	}

	final, _ := store.GetByID(n.ID)
	if final.Status != models.CampaignStatusFailed {
		t.Errorf("status = %s, want failed synchronously", final.Status)
	}
	if final.RecipientCount != 0 || final.SuccessCount != 0 || final.FailureCount != 0 {
		t.Errorf("counters should stay zero, got %d/%d/%d", final.RecipientCount, final.SuccessCount, final.FailureCount)
	}
}

func TestNewsletterSendSubset(t *testing.T) {
	store := newFakeNewsletterStore()
	sender := &recordingSender{}
	svc := NewNewsletterService(store, &fakeUserSource{users: testUsers()}, sender, dispatch.NopPacer{}, "https://example.com")

	n, _ := svc.Create("admin-1", &models.CreateNewsletterRequest{Subject: "s", BodyHTML: "<p>b</p>"})
	resp, done, err := svc.Send(context.Background(), n.ID, &models.SendNewsletterRequest{UserIDs: []string{"u2"}})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.RecipientCount != 1 {
		t.Fatalf("recipient count = %d, want 1", resp.RecipientCount)
	}
	awaitSummary(t, done)

	if len(sender.targets) != 1 || sender.targets[0] != "b@example.com" {
		t.Errorf("targets = %v, want only the requested subset", sender.targets)
	}
}

func TestNewsletterSendOutlivesTriggerContext(t *testing.T) {
	store := newFakeNewsletterStore()
	sender := &recordingSender{}
	svc := NewNewsletterService(store, &fakeUserSource{users: testUsers()}, sender, dispatch.NewIntervalPacer(10*time.Millisecond), "https://example.com")

	n, err := svc.Create("admin-1", &models.CreateNewsletterRequest{Subject: "s", BodyHTML: "<p>b</p>"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The HTTP server cancels the request context as soon as the 202 is
	// written; the detached loop must keep delivering anyway.
	ctx, cancel := context.WithCancel(context.Background())
	_, done, err := svc.Send(ctx, n.ID, nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	cancel()

	sum := awaitSummary(t, done)
	if sum.Success != 3 || sum.Failure != 0 {
		t.Fatalf("summary = %+v, want all 3 delivered", sum)
	}
	if len(sender.targets) != 3 {
		t.Fatalf("provider invoked %d times, want 3", len(sender.targets))
	}

	final, _ := store.GetByID(n.ID)
	if final.Status != models.CampaignStatusCompleted {
		t.Errorf("status = %s, want completed", final.Status)
	}
	if final.SuccessCount+final.FailureCount != final.RecipientCount {
		t.Errorf("counters %d+%d do not add up to %d recipients",
			final.SuccessCount, final.FailureCount, final.RecipientCount)
	}
}

func TestNewsletterSendRejectsNonDraft(t *testing.T) {
	store := newFakeNewsletterStore()
	svc := NewNewsletterService(store, &fakeUserSource{users: testUsers()}, &recordingSender{}, dispatch.NopPacer{}, "https://example.com")

	n, _ := svc.Create("admin-1", &models.CreateNewsletterRequest{Subject: "s", BodyHTML: "<p>b</p>"})
	store.MarkSending(n.ID, 3)

	if _, _, err := svc.Send(context.Background(), n.ID, nil); !errors.Is(err, ErrNotSendable) {
		t.Errorf("err = %v, want ErrNotSendable for a sending newsletter", err)
	}

	store.Finalize(n.ID, models.CampaignStatusCompleted, 3, 0)
	if _, _, err := svc.Send(context.Background(), n.ID, nil); !errors.Is(err, ErrNotSendable) {
		t.Errorf("err = %v, want ErrNotSendable for a completed newsletter", err)
	}
}

func TestNewsletterDeleteRefusedWhileSending(t *testing.T) {
	store := newFakeNewsletterStore()
	svc := NewNewsletterService(store, &fakeUserSource{}, &recordingSender{}, dispatch.NopPacer{}, "https://example.com")

	n, _ := svc.Create("admin-1", &models.CreateNewsletterRequest{Subject: "s", BodyHTML: "<p>b</p>"})
	store.MarkSending(n.ID, 2)

	if err := svc.Delete(n.ID); !errors.Is(err, ErrNotSendable) {
		t.Errorf("err = %v, want refusal while sending", err)
	}

	store.Finalize(n.ID, models.CampaignStatusCompleted, 2, 0)
	if err := svc.Delete(n.ID); err != nil {
		t.Errorf("Delete after completion: %v", err)
	}
}

func TestNewsletterUpdateOnlyDrafts(t *testing.T) {
	store := newFakeNewsletterStore()
	svc := NewNewsletterService(store, &fakeUserSource{}, &recordingSender{}, dispatch.NopPacer{}, "https://example.com")

	n, _ := svc.Create("admin-1", &models.CreateNewsletterRequest{Subject: "old", BodyHTML: "<p>old</p>"})

	updated, err := svc.Update(n.ID, &models.UpdateNewsletterRequest{Subject: "new", BodyHTML: "<p>new</p>"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Subject != "new" {
		t.Errorf("subject = %q", updated.Subject)
	}

	store.MarkSending(n.ID, 1)
	if _, err := svc.Update(n.ID, &models.UpdateNewsletterRequest{Subject: "x", BodyHTML: "y"}); !errors.Is(err, ErrNotSendable) {
		t.Errorf("err = %v, want refusal for non-draft", err)
	}
}
