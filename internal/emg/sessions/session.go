package sessions

import (
	"time"

	"github.com/rehabstats/emgcore/internal/emg/session"
)

// Session is one recorded rehabilitation exercise session under review.
// The raw EMG signal is processed upstream; by the time a session lands
// here it is a set of per-channel contraction records plus the
// configuration collected from calibration and the clinician.
type Session struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Therapist string    `json:"therapist"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ComputeRequest is the payload of the synchronous score endpoint:
// everything needed for one pure computation, no stored state involved.
type ComputeRequest struct {
	Channels map[string][]session.ContractionRecord `json:"channels"`
	Config   session.Config                         `json:"config"`
}
