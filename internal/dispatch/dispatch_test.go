package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (s *fakeSender) Send(_ context.Context, target string, _ Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, target)
	if err, ok := s.failFor[target]; ok {
		return "", err
	}
	return "provider-" + target, nil
}

type progressPoint struct {
	success int
	failure int
}

type fakeTracker struct {
	mu        sync.Mutex
	progress  []progressPoint
	delivered []string
	finalized []Summary
}

func (t *fakeTracker) Progress(_ context.Context, success, failure int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = append(t.progress, progressPoint{success, failure})
	return nil
}

func (t *fakeTracker) Delivered(_ context.Context, r Recipient, providerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.delivered = append(t.delivered, r.ID+":"+providerID)
	return nil
}

func (t *fakeTracker) Finalize(_ context.Context, sum Summary) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finalized = append(t.finalized, sum)
	return nil
}

type countingPacer struct {
	mu    sync.Mutex
	waits int
}

func (p *countingPacer) Wait(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return nil
}

func recipients(n int) []Recipient {
	out := make([]Recipient, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Recipient{
			ID:     fmt.Sprintf("r%d", i),
			Target: fmt.Sprintf("user%d@example.com", i),
		})
	}
	return out
}

func passthroughRender(r Recipient) Message {
	return Message{Subject: "hello", Body: "hi " + r.Target}
}

func awaitRun(t *testing.T, done <-chan Summary) Summary {
	t.Helper()
	select {
	case sum := <-done:
		return sum
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch run did not finish")
		return Summary{}
	}
}

func TestRunDeliversInOrderWithPacing(t *testing.T) {
	sender := &fakeSender{}
	tracker := &fakeTracker{}
	pacer := &countingPacer{}

	done := Run(context.Background(), Job{
		CampaignID: "c1",
		Kind:       "newsletter",
		Recipients: recipients(5),
		Render:     passthroughRender,
		Sender:     sender,
		Tracker:    tracker,
		Pacer:      pacer,
	})
	sum := awaitRun(t, done)

	if sum.Success != 5 || sum.Failure != 0 {
		t.Fatalf("summary = %+v, want 5 successes", sum)
	}
	if sum.Status() != "completed" {
		t.Errorf("status = %q, want completed", sum.Status())
	}
	for i, target := range sender.sent {
		want := fmt.Sprintf("user%d@example.com", i)
		if target != want {
			t.Errorf("send %d went to %s, want %s", i, target, want)
		}
	}
	// N recipients means N-1 pacing gaps.
	if pacer.waits != 4 {
		t.Errorf("pacer waited %d times, want 4", pacer.waits)
	}
	if len(tracker.finalized) != 1 {
		t.Fatalf("finalized %d times, want exactly once", len(tracker.finalized))
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{
		"user1@example.com": errors.New("mailbox full"),
		"user3@example.com": errors.New("rejected"),
	}}
	tracker := &fakeTracker{}

	done := Run(context.Background(), Job{
		CampaignID: "c2",
		Kind:       "newsletter",
		Recipients: recipients(5),
		Render:     passthroughRender,
		Sender:     sender,
		Tracker:    tracker,
		Pacer:      NopPacer{},
	})
	sum := awaitRun(t, done)

	if len(sender.sent) != 5 {
		t.Fatalf("attempted %d sends, want all 5 despite failures", len(sender.sent))
	}
	if sum.Success != 3 || sum.Failure != 2 {
		t.Fatalf("summary = %+v, want 3 successes and 2 failures", sum)
	}
	if sum.Success+sum.Failure != sum.Recipients {
		t.Errorf("counters do not add up to recipient count: %+v", sum)
	}
	if sum.Status() != "completed" {
		t.Errorf("status = %q, want completed for a partial failure", sum.Status())
	}
	// Delivered fires only for successes.
	if len(tracker.delivered) != 3 {
		t.Errorf("delivered callbacks = %d, want 3", len(tracker.delivered))
	}
}

func TestRunAllFailuresFinalizesFailed(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{
		"user0@example.com": errors.New("boom"),
		"user1@example.com": errors.New("boom"),
		"user2@example.com": errors.New("boom"),
	}}
	tracker := &fakeTracker{}

	done := Run(context.Background(), Job{
		CampaignID: "c3",
		Kind:       "broadcast",
		Recipients: recipients(3),
		Render:     passthroughRender,
		Sender:     sender,
		Tracker:    tracker,
		Pacer:      NopPacer{},
	})
	sum := awaitRun(t, done)

	if sum.Success != 0 || sum.Failure != 3 {
		t.Fatalf("summary = %+v, want all failures", sum)
	}
	if sum.Status() != "failed" {
		t.Errorf("status = %q, want failed when nothing was delivered", sum.Status())
	}
	if len(tracker.finalized) != 1 || tracker.finalized[0] != sum {
		t.Errorf("finalized = %+v, want exactly the run summary", tracker.finalized)
	}
}

func TestRunProgressAfterEverySend(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{
		"user1@example.com": errors.New("rejected"),
	}}
	tracker := &fakeTracker{}

	done := Run(context.Background(), Job{
		CampaignID: "c4",
		Kind:       "newsletter",
		Recipients: recipients(3),
		Render:     passthroughRender,
		Sender:     sender,
		Tracker:    tracker,
		Pacer:      NopPacer{},
	})
	awaitRun(t, done)

	want := []progressPoint{{1, 0}, {1, 1}, {2, 1}}
	if len(tracker.progress) != len(want) {
		t.Fatalf("progress points = %v, want %v", tracker.progress, want)
	}
	for i, p := range tracker.progress {
		if p != want[i] {
			t.Errorf("progress[%d] = %+v, want %+v", i, p, want[i])
		}
	}
	// Each progress point is monotonically non-decreasing in both counters.
	for i := 1; i < len(tracker.progress); i++ {
		prev, cur := tracker.progress[i-1], tracker.progress[i]
		if cur.success < prev.success || cur.failure < prev.failure {
			t.Errorf("progress regressed from %+v to %+v", prev, cur)
		}
	}
}

type panickingTracker struct {
	fakeTracker
}

func (t *panickingTracker) Delivered(context.Context, Recipient, string) error {
	panic("bookkeeping blew up")
}

func TestRunPanicStillFinalizes(t *testing.T) {
	sender := &fakeSender{}
	tracker := &panickingTracker{}

	done := Run(context.Background(), Job{
		CampaignID: "c5",
		Kind:       "broadcast",
		Recipients: recipients(3),
		Render:     passthroughRender,
		Sender:     sender,
		Tracker:    tracker,
		Pacer:      NopPacer{},
	})
	sum := awaitRun(t, done)

	if len(tracker.finalized) != 1 {
		t.Fatalf("finalized %d times after panic, want exactly once", len(tracker.finalized))
	}
	// The panic fired on the first success, so only that one counted.
	if sum.Success != 1 {
		t.Errorf("summary = %+v, want the pre-panic counters preserved", sum)
	}
}

func TestRunEmptyRecipients(t *testing.T) {
	tracker := &fakeTracker{}

	done := Run(context.Background(), Job{
		CampaignID: "c6",
		Kind:       "newsletter",
		Recipients: nil,
		Render:     passthroughRender,
		Sender:     &fakeSender{},
		Tracker:    tracker,
		Pacer:      NopPacer{},
	})
	sum := awaitRun(t, done)

	if sum.Recipients != 0 || sum.Success != 0 || sum.Failure != 0 {
		t.Fatalf("summary = %+v, want all zero", sum)
	}
	if sum.Status() != "failed" {
		t.Errorf("status = %q, want failed for an empty run", sum.Status())
	}
	if len(tracker.finalized) != 1 {
		t.Errorf("finalized %d times, want exactly once", len(tracker.finalized))
	}
}

type cancelPacer struct{}

func (cancelPacer) Wait(ctx context.Context) error { return ctx.Err() }

func TestRunAbortsWhenPacerFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := &fakeSender{}
	tracker := &fakeTracker{}

	done := Run(ctx, Job{
		CampaignID: "c7",
		Kind:       "newsletter",
		Recipients: recipients(3),
		Render:     passthroughRender,
		Sender:     sender,
		Tracker:    tracker,
		Pacer:      cancelPacer{},
	})
	sum := awaitRun(t, done)

	// The first send happened before the first pacing gap.
	if len(sender.sent) != 1 {
		t.Fatalf("attempted %d sends, want 1 before aborting", len(sender.sent))
	}
	if sum.Success != 1 {
		t.Errorf("summary = %+v, want the partial counters", sum)
	}
	if len(tracker.finalized) != 1 {
		t.Errorf("finalized %d times, want exactly once even on abort", len(tracker.finalized))
	}
}

func TestIntervalPacerSpacesSends(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	interval := 50 * time.Millisecond
	p := NewIntervalPacer(interval)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*interval-10*time.Millisecond {
		t.Errorf("two waits took %s, want at least ~%s", elapsed, 2*interval)
	}
}
