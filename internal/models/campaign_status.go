package models

// CampaignStatus is the lifecycle state shared by newsletters and broadcasts.
//
//	draft -> sending -> completed | failed
//
// Transitions are one-directional. A campaign in sending or a terminal state
// cannot be re-sent; this is enforced at the HTTP boundary.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusSending   CampaignStatus = "sending"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusFailed    CampaignStatus = "failed"
)

// Terminal reports whether the status is an end state.
func (s CampaignStatus) Terminal() bool {
	return s == CampaignStatusCompleted || s == CampaignStatusFailed
}
