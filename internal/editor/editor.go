// Package editor models the invitation page's edit flow as an explicit
// finite-state session: view/edit mode, the admin grant, the admin prompt,
// the working draft, and the save-in-flight latch. Transitions are pure
// value-state changes so the flow is testable without a web server.
package editor

import (
	"errors"

	"github.com/goldencity/invite/internal/wedding"
)

// Mode is the session's display mode.
type Mode string

const (
	// ModeView renders the invitation read-only.
	ModeView Mode = "view"
	// ModeEdit renders the draft form.
	ModeEdit Mode = "edit"
)

// SaveState is the single-flight latch around saving the draft.
type SaveState string

const (
	// SaveIdle means no save is in flight.
	SaveIdle SaveState = "idle"
	// SaveInFlight means a save has started and has not resolved yet.
	// Further save requests are ignored until it resolves.
	SaveInFlight SaveState = "saving"
)

// Ceremony field names accepted by UpdateCeremony.
const (
	FieldName     = "name"
	FieldDate     = "date"
	FieldTime     = "time"
	FieldLocation = "location"
	FieldAddress  = "address"
	FieldMapLink  = "mapLink"
)

var (
	// ErrNotGranted reports an edit transition attempted without the admin
	// grant.
	ErrNotGranted = errors.New("admin access not granted")
	// ErrNotEditing reports a draft transition attempted outside edit mode.
	ErrNotEditing = errors.New("not in edit mode")
	// ErrCeremonyIndex reports a ceremony index outside the draft sequence.
	ErrCeremonyIndex = errors.New("ceremony index out of range")
	// ErrUnknownField reports an unrecognized ceremony field name.
	ErrUnknownField = errors.New("unknown ceremony field")
	// ErrSaveInFlight reports a save attempted while one is already pending.
	ErrSaveInFlight = errors.New("save already in flight")
)

// Session is the edit-flow state for one browser session.
type Session struct {
	Mode         Mode
	AdminGranted bool
	PromptOpen   bool
	Draft        *wedding.Details
	Save         SaveState
}

// NewSession returns a fresh session in view mode with no grant.
func NewSession() *Session {
	return &Session{Mode: ModeView, Save: SaveIdle}
}

// OpenPrompt shows the admin code prompt.
func (s *Session) OpenPrompt() {
	s.PromptOpen = true
}

// ClosePrompt hides the admin code prompt without changing the grant.
func (s *Session) ClosePrompt() {
	s.PromptOpen = false
}

// SubmitCode checks the entered code against the configured admin code.
// A match grants admin access and closes the prompt; a mismatch leaves any
// prior grant untouched and keeps the prompt open. Either way the caller
// clears its input field. The code is a UI gate, not a credential.
func (s *Session) SubmitCode(entered, adminCode string) bool {
	if entered != adminCode {
		return false
	}
	s.AdminGranted = true
	s.PromptOpen = false
	return true
}

// StartEditing deep-clones the currently displayed record into the draft and
// enters edit mode. It requires the admin grant.
func (s *Session) StartEditing(current wedding.Details) error {
	if !s.AdminGranted {
		return ErrNotGranted
	}
	draft := current.Clone()
	s.Draft = &draft
	s.Mode = ModeEdit
	return nil
}

// SetGroomName replaces the draft's groom name.
func (s *Session) SetGroomName(value string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	s.Draft.GroomName = value
	return nil
}

// SetBrideName replaces the draft's bride name.
func (s *Session) SetBrideName(value string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	s.Draft.BrideName = value
	return nil
}

// SetInvitationText replaces the draft's invitation text.
func (s *Session) SetInvitationText(value string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	s.Draft.InvitationText = value
	return nil
}

// AddCeremony appends an all-empty ceremony to the end of the draft's
// sequence. There is no upper bound on the count.
func (s *Session) AddCeremony() error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	s.Draft.Ceremonies = append(s.Draft.Ceremonies, wedding.Ceremony{})
	return nil
}

// RemoveCeremony removes the ceremony at index; later ceremonies shift down
// by one.
func (s *Session) RemoveCeremony(index int) error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.Draft.Ceremonies) {
		return ErrCeremonyIndex
	}
	s.Draft.Ceremonies = append(s.Draft.Ceremonies[:index], s.Draft.Ceremonies[index+1:]...)
	return nil
}

// UpdateCeremony replaces exactly one scalar field of the ceremony at index.
// Other fields and other ceremonies are untouched. No validation is applied
// to the value.
func (s *Session) UpdateCeremony(index int, field, value string) error {
	if err := s.requireDraft(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.Draft.Ceremonies) {
		return ErrCeremonyIndex
	}
	ceremony := &s.Draft.Ceremonies[index]
	switch field {
	case FieldName:
		ceremony.Name = value
	case FieldDate:
		ceremony.Date = value
	case FieldTime:
		ceremony.Time = value
	case FieldLocation:
		ceremony.Location = value
	case FieldAddress:
		ceremony.Address = value
	case FieldMapLink:
		ceremony.MapLink = value
	default:
		return ErrUnknownField
	}
	return nil
}

// BeginSave flips the single-flight latch and returns the draft to submit.
// It fails while another save is pending so rapid double-submits never send
// two writes in parallel.
func (s *Session) BeginSave() (wedding.Details, error) {
	if s.Mode != ModeEdit || s.Draft == nil {
		return wedding.Details{}, ErrNotEditing
	}
	if s.Save == SaveInFlight {
		return wedding.Details{}, ErrSaveInFlight
	}
	s.Save = SaveInFlight
	return s.Draft.Clone(), nil
}

// CompleteSave resolves a successful save: the draft is discarded and the
// session returns to view mode. The displayed record becomes whatever the
// store's next read yields.
func (s *Session) CompleteSave() {
	s.Save = SaveIdle
	s.Draft = nil
	s.Mode = ModeView
}

// FailSave resolves a failed save: the session stays in edit mode with the
// draft intact so the user can retry manually.
func (s *Session) FailSave() {
	s.Save = SaveIdle
}

// Cancel discards the draft and returns to view mode without writing.
func (s *Session) Cancel() {
	s.Draft = nil
	s.Mode = ModeView
	s.Save = SaveIdle
}

func (s *Session) requireDraft() error {
	if s.Mode != ModeEdit || s.Draft == nil {
		return ErrNotEditing
	}
	return nil
}
