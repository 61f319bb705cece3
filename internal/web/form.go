package web

import (
	"fmt"
	"net/http"

	"github.com/goldencity/invite/internal/editor"
)

// applyDraftForm replays the posted form fields onto the draft through the
// editor's transitions. Every draft mutation endpoint calls this first so
// typed-but-unsaved values survive ceremony add/remove round trips.
//
// Absent fields are left untouched; values are applied verbatim with no
// validation, matching the draft's free-text contract.
func applyDraftForm(session *editor.Session, r *http.Request) error {
	if session.Mode != editor.ModeEdit || session.Draft == nil {
		return editor.ErrNotEditing
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}

	if values, ok := r.PostForm["groomName"]; ok && len(values) > 0 {
		if err := session.SetGroomName(values[0]); err != nil {
			return err
		}
	}
	if values, ok := r.PostForm["brideName"]; ok && len(values) > 0 {
		if err := session.SetBrideName(values[0]); err != nil {
			return err
		}
	}
	if values, ok := r.PostForm["invitationText"]; ok && len(values) > 0 {
		if err := session.SetInvitationText(values[0]); err != nil {
			return err
		}
	}

	fields := []string{
		editor.FieldName,
		editor.FieldDate,
		editor.FieldTime,
		editor.FieldLocation,
		editor.FieldAddress,
		editor.FieldMapLink,
	}
	for i := range session.Draft.Ceremonies {
		for _, field := range fields {
			key := fmt.Sprintf("ceremony.%d.%s", i, field)
			values, ok := r.PostForm[key]
			if !ok || len(values) == 0 {
				continue
			}
			if err := session.UpdateCeremony(i, field, values[0]); err != nil {
				return err
			}
		}
	}
	return nil
}
