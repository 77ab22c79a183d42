// Package attribution models how a visitor arrived at the site. A record is
// captured once per browsing session on the first request carrying an
// acquisition parameter, and attached to later form submissions.
package attribution

import (
	"net/url"
	"time"
)

// TTL after which a record is treated as absent. Expiry is evaluated lazily
// at read time; there is no background sweep.
const TTL = 30 * 24 * time.Hour

// Recognized acquisition query parameters.
const (
	ParamRef         = "ref"
	ParamUTMSource   = "utm_source"
	ParamUTMCampaign = "utm_campaign"
	ParamUTMMedium   = "utm_medium"
	ParamUTMContent  = "utm_content"
)

// UTMParams carries optional campaign tags captured alongside the source.
type UTMParams struct {
	Campaign string `json:"campaign,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Content  string `json:"content,omitempty"`
}

// Record is the persisted acquisition record.
type Record struct {
	Source      string    `json:"source"`
	CapturedAt  time.Time `json:"timestamp"`
	LandingPage string    `json:"landingPage"`
	UTM         UTMParams `json:"utmParams"`
}

// FromQuery extracts a record from request query parameters. It returns nil
// when no recognized acquisition parameter is present. A plain referral tag
// (ref) wins over a campaign source when both are present.
func FromQuery(query url.Values, landingPage string, now time.Time) *Record {
	source := query.Get(ParamRef)
	if source == "" {
		source = query.Get(ParamUTMSource)
	}
	if source == "" {
		return nil
	}

	return &Record{
		Source:      source,
		CapturedAt:  now,
		LandingPage: landingPage,
		UTM: UTMParams{
			Campaign: query.Get(ParamUTMCampaign),
			Medium:   query.Get(ParamUTMMedium),
			Content:  query.Get(ParamUTMContent),
		},
	}
}

// Expired reports whether the record has outlived its TTL.
func (r *Record) Expired(now time.Time) bool {
	return now.Sub(r.CapturedAt) > TTL
}

// SubmissionFields flattens the record for inclusion in an outbound
// submission payload. Empty tags are omitted.
func (r *Record) SubmissionFields() map[string]string {
	fields := map[string]string{
		"referral_source":       r.Source,
		"referral_landing_page": r.LandingPage,
	}
	if r.UTM.Campaign != "" {
		fields["referral_campaign"] = r.UTM.Campaign
	}
	if r.UTM.Medium != "" {
		fields["referral_medium"] = r.UTM.Medium
	}
	return fields
}
