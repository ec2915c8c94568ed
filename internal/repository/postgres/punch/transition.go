package punch

import (
	"time"

	"pointage/backend/internal/entity"
	"pointage/backend/internal/repository/postgres"
)

// Business start cutoff: a first scan after 08:30 local time is late.
const (
	cutoffHour   = 8
	cutoffMinute = 30
)

// Cutoff returns the business-start cutoff for the calendar day of t, in t's
// location.
func Cutoff(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), cutoffHour, cutoffMinute, 0, 0, t.Location())
}

type ScanKind string

const (
	ScanEntry ScanKind = "entry"
	ScanExit  ScanKind = "exit"
)

// Apply records a badge read on the punch row. The scan is an exit once a
// confirmed first-in exists; until then every scan re-stamps the candidate
// first-in, so a re-scan before validation just moves the proposed arrival.
// Every scan puts the row back into pending: nothing counts as presence
// until a supervisor signs it off.
func Apply(p *entity.Punch, now time.Time) ScanKind {
	kind := ScanEntry

	if p.Confirmed.FirstIn != nil {
		out := now
		p.Candidate.LastOut = &out
		kind = ScanExit
	} else {
		in := now
		p.Candidate.FirstIn = &in
		p.Candidate.Late = now.After(Cutoff(now))
	}

	p.Present = false
	p.Pending = true
	p.Rejected = false

	return kind
}

// Confirm promotes whichever candidate slots are populated into the
// confirmed value and marks the row present. The late flag rides with the
// first-in slot. Candidate values are cleared; validation is one-shot.
func Confirm(p *entity.Punch, validatorID int) error {
	if !p.Pending {
		return postgres.ErrAlreadyProcessed
	}

	if p.Candidate.FirstIn != nil {
		p.Confirmed.FirstIn = p.Candidate.FirstIn
		p.Confirmed.Late = p.Candidate.Late
	}
	if p.Candidate.LastOut != nil {
		p.Confirmed.LastOut = p.Candidate.LastOut
	}

	p.Candidate = entity.PunchTimes{}
	p.Present = true
	p.Pending = false
	p.Rejected = false
	p.ValidatorID = &validatorID

	return nil
}

// Reject discards the candidate value. The row stays absent.
func Reject(p *entity.Punch, validatorID int) error {
	if !p.Pending {
		return postgres.ErrAlreadyProcessed
	}

	p.Candidate = entity.PunchTimes{}
	p.Present = false
	p.Pending = false
	p.Rejected = true
	p.ValidatorID = &validatorID

	return nil
}
