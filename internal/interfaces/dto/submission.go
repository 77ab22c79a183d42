// Package dto defines the request payloads accepted by the public API,
// with validation tags checked by utils.ValidateStruct.
package dto

// ContactRequest is the contact-form payload. Website is a honeypot field
// that must stay empty; bots that fill it are dropped silently.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,e164"`
	Subject string `json:"subject" validate:"required,oneof=reservation event feedback info"`
	Message string `json:"message" validate:"required,min=10,max=2000"`

	Website           string `json:"website"`
	VerificationToken string `json:"verificationToken"`

	ReferralSource      string `json:"referral_source" validate:"omitempty,max=100"`
	ReferralLandingPage string `json:"referral_landing_page" validate:"omitempty,max=200"`
	ReferralCampaign    string `json:"referral_campaign" validate:"omitempty,max=100"`
	ReferralMedium      string `json:"referral_medium" validate:"omitempty,max=100"`
}

// MergeAttribution fills empty referral fields from the stored attribution
// record. Fields already present in the payload win.
func (r *ContactRequest) MergeAttribution(fields map[string]string) {
	if fields == nil {
		return
	}
	if r.ReferralSource == "" {
		r.ReferralSource = fields["referral_source"]
	}
	if r.ReferralLandingPage == "" {
		r.ReferralLandingPage = fields["referral_landing_page"]
	}
	if r.ReferralCampaign == "" {
		r.ReferralCampaign = fields["referral_campaign"]
	}
	if r.ReferralMedium == "" {
		r.ReferralMedium = fields["referral_medium"]
	}
}

// Referral returns the non-empty referral fields as a flat map.
func (r *ContactRequest) Referral() map[string]string {
	fields := map[string]string{}
	if r.ReferralSource != "" {
		fields["referral_source"] = r.ReferralSource
	}
	if r.ReferralLandingPage != "" {
		fields["referral_landing_page"] = r.ReferralLandingPage
	}
	if r.ReferralCampaign != "" {
		fields["referral_campaign"] = r.ReferralCampaign
	}
	if r.ReferralMedium != "" {
		fields["referral_medium"] = r.ReferralMedium
	}
	return fields
}

// NewsletterRequest is the newsletter signup payload. Locale is checked
// against the configured locale set by the submission service, since the
// supported set is not known at compile time.
type NewsletterRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Locale            string `json:"locale" validate:"omitempty,max=10"`
	VerificationToken string `json:"verificationToken"`
}
