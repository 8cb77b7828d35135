// Package dispatch implements the bulk outbound send loop shared by the
// newsletter and WhatsApp broadcast features. A job walks its recipient
// snapshot strictly in order, one send at a time with pacing between sends,
// counts outcomes without aborting on per-recipient failures, and finalizes
// the campaign record when the last recipient has been processed. The loop
// runs detached from the HTTP request that triggered it.
package dispatch

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Recipient is one addressable target, snapshotted at trigger time. The
// snapshot is never re-queried mid-run: eligibility changes after the trigger
// do not affect an in-flight campaign.
type Recipient struct {
	ID          string // source record ID (user or subscription)
	Target      string // email address or normalized phone number
	Name        string
	OptOutToken string
}

// Message is a rendered outbound message. Subject is empty for channels
// without one.
type Message struct {
	Subject string
	Body    string
}

// RenderFunc personalizes the campaign payload for a single recipient.
type RenderFunc func(r Recipient) Message

// Sender is the provider adapter boundary: one attempt per recipient, no
// retries. A nil error means the provider accepted the message; the returned
// string is the provider's message ID.
type Sender interface {
	Send(ctx context.Context, target string, msg Message) (string, error)
}

// Tracker persists campaign state as the loop advances. Progress is called
// after every send so observers polling the campaign record see live
// counters; Delivered is called on success only (per-recipient bookkeeping
// such as last-sent stamps); Finalize is called exactly once per run.
type Tracker interface {
	Progress(ctx context.Context, success, failure int) error
	Delivered(ctx context.Context, r Recipient, providerID string) error
	Finalize(ctx context.Context, sum Summary) error
}

// Job describes one campaign run.
type Job struct {
	CampaignID string
	Kind       string // channel label for logs: "newsletter" or "broadcast"
	Recipients []Recipient
	Render     RenderFunc
	Sender     Sender
	Tracker    Tracker
	Pacer      Pacer
}

// Summary is the terminal outcome of a run. Success+Failure equals the
// recipient count once the run finishes normally.
type Summary struct {
	Recipients int
	Success    int
	Failure    int
}

// Status maps the counters to the campaign's terminal status: failed when
// nothing was delivered, completed when at least one send succeeded.
func (s Summary) Status() string {
	if s.Success == 0 {
		return "failed"
	}
	return "completed"
}

// Run starts the dispatch loop on its own goroutine and returns immediately.
// The returned channel receives exactly one Summary when the run has been
// finalized, so callers (and tests) can await completion deterministically;
// production call sites simply drop the channel.
func Run(ctx context.Context, job Job) <-chan Summary {
	done := make(chan Summary, 1)
	go func() {
		done <- run(ctx, job)
	}()
	return done
}

func run(ctx context.Context, job Job) (sum Summary) {
	sum.Recipients = len(job.Recipients)
	log := logrus.WithFields(logrus.Fields{
		"campaign_id": job.CampaignID,
		"kind":        job.Kind,
		"recipients":  sum.Recipients,
	})

	// Finalization is guaranteed: even if the loop body panics the campaign
	// leaves sending with whatever counters were gathered, so a record can
	// never be stuck in sending by its own run.
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Dispatch loop panicked: %v", r)
		}
		if err := job.Tracker.Finalize(ctx, sum); err != nil {
			log.Errorf("Failed to finalize campaign: %v", err)
			return
		}
		log.WithFields(logrus.Fields{
			"success": sum.Success,
			"failure": sum.Failure,
			"status":  sum.Status(),
		}).Info("Dispatch finished")
	}()

	for i, rcpt := range job.Recipients {
		msg := job.Render(rcpt)

		providerID, err := job.Sender.Send(ctx, rcpt.Target, msg)
		if err != nil {
			// Per-recipient failures are recorded and the loop moves on.
			sum.Failure++
			log.WithField("target", rcpt.Target).Warnf("Send failed: %v", err)
		} else {
			sum.Success++
			if err := job.Tracker.Delivered(ctx, rcpt, providerID); err != nil {
				log.WithField("target", rcpt.Target).Warnf("Failed to record delivery: %v", err)
			}
		}

		if err := job.Tracker.Progress(ctx, sum.Success, sum.Failure); err != nil {
			log.Warnf("Failed to persist progress: %v", err)
		}

		if i < len(job.Recipients)-1 {
			if err := job.Pacer.Wait(ctx); err != nil {
				log.Errorf("Pacing interrupted, aborting run: %v", err)
				return sum
			}
		}
	}

	return sum
}
