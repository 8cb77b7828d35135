package services

import (
	"github.com/sirupsen/logrus"
)

// StuckCampaignSweeper fails campaigns left in sending by a previous process.
type StuckCampaignSweeper interface {
	FailStuckSending() (int64, error)
}

// SweepStuckCampaigns runs once at startup. A campaign found in sending at
// boot can have no live dispatch loop, so its true outcome is unknown and it
// is marked failed rather than left stuck forever.
func SweepStuckCampaigns(newsletters, broadcasts StuckCampaignSweeper) error {
	n, err := newsletters.FailStuckSending()
	if err != nil {
		return err
	}
	b, err := broadcasts.FailStuckSending()
	if err != nil {
		return err
	}
	if n > 0 || b > 0 {
		logrus.WithFields(logrus.Fields{
			"newsletters": n,
			"broadcasts":  b,
		}).Warn("Marked stuck sending campaigns as failed")
	}
	return nil
}
