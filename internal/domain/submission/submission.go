// Package submission holds the typed payloads produced by validation. Both
// are ephemeral: they live for the duration of one request and are never
// persisted server-side.
package submission

// Contact subjects form a fixed enumerated set.
const (
	SubjectReservation = "reservation"
	SubjectEvent       = "event"
	SubjectFeedback    = "feedback"
	SubjectInfo        = "info"
)

// Subjects lists the accepted contact subjects, in display order.
var Subjects = []string{SubjectReservation, SubjectEvent, SubjectFeedback, SubjectInfo}

// Contact is a validated, normalized contact-form submission.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string

	// Referral holds flattened attribution fields (referral_source,
	// referral_landing_page, referral_campaign, referral_medium).
	Referral map[string]string
}

// Newsletter is a validated newsletter signup.
type Newsletter struct {
	Email  string
	Locale string
}
