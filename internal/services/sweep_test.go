package services

import (
	"errors"
	"testing"
)

type fakeSweeper struct {
	n   int64
	err error
}

func (f fakeSweeper) FailStuckSending() (int64, error) { return f.n, f.err }

func TestSweepStuckCampaigns(t *testing.T) {
	if err := SweepStuckCampaigns(fakeSweeper{n: 2}, fakeSweeper{n: 0}); err != nil {
		t.Fatalf("SweepStuckCampaigns: %v", err)
	}

	boom := errors.New("db down")
	if err := SweepStuckCampaigns(fakeSweeper{err: boom}, fakeSweeper{}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want the sweep error surfaced", err)
	}
}
