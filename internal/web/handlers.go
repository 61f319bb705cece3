package web

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/goldencity/invite/internal/editor"
	weberrors "github.com/goldencity/invite/internal/web/platform/errors"
	"github.com/goldencity/invite/internal/web/platform/flash"
	"github.com/goldencity/invite/internal/web/templates"
	"github.com/goldencity/invite/internal/wedding"
)

// DetailsService exposes the wedding record operations the handlers need.
type DetailsService interface {
	GetDetails(ctx context.Context) (wedding.Details, error)
	UpdateDetails(ctx context.Context, details wedding.Details) error
	Watch(ctx context.Context) (<-chan wedding.Details, func())
}

// handlers routes invitation page requests.
type handlers struct {
	service   DetailsService
	sessions  *sessionStore
	adminCode string
	jwtKey    []byte
}

func newHandlers(service DetailsService, adminCode string, jwtKey []byte) handlers {
	return handlers{
		service:   service,
		sessions:  newSessionStore(),
		adminCode: adminCode,
		jwtKey:    jwtKey,
	}
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" /{$}", h.handleHome)
	mux.HandleFunc(http.MethodPost+" /admin/prompt", h.handlePromptOpen)
	mux.HandleFunc(http.MethodPost+" /admin/prompt/close", h.handlePromptClose)
	mux.HandleFunc(http.MethodPost+" /admin/unlock", h.handleUnlock)
	mux.HandleFunc(http.MethodPost+" /edit", h.handleEditStart)
	mux.HandleFunc(http.MethodPost+" /edit/cancel", h.handleEditCancel)
	mux.HandleFunc(http.MethodPost+" /edit/save", h.handleEditSave)
	mux.HandleFunc(http.MethodPost+" /edit/ceremonies/add", h.handleCeremonyAdd)
	mux.HandleFunc(http.MethodPost+" /edit/ceremonies/{index}/remove", h.handleCeremonyRemove)
	mux.HandleFunc(http.MethodGet+" /events", h.handleEvents)
	mux.HandleFunc(http.MethodGet+" /healthz", h.handleHealth)
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	entry, err := h.sessions.resolve(w, r)
	if err != nil {
		log.Printf("resolve session: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	details, err := h.service.GetDetails(r.Context())
	if err != nil {
		log.Printf("get wedding details: %v", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	entry.mu.Lock()
	session := entry.editor
	if hasAdminGrant(r, h.jwtKey) {
		session.AdminGranted = true
	}
	page := templates.Page{
		Invitation:   invitationView(details),
		Editing:      session.Mode == editor.ModeEdit && session.Draft != nil,
		AdminGranted: session.AdminGranted,
		PromptOpen:   session.PromptOpen,
	}
	if page.Editing {
		page.Draft = invitationView(*session.Draft)
	}
	entry.mu.Unlock()

	if notice, ok := flash.ReadAndClear(w, r); ok {
		page.Toast = &templates.Toast{Kind: string(notice.Kind), Message: notice.Message}
	}

	var buf bytes.Buffer
	if err := templates.Layout(page).Render(r.Context(), &buf); err != nil {
		log.Printf("render invitation page: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h handlers) handlePromptOpen(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session *editor.Session) {
		session.OpenPrompt()
	})
}

func (h handlers) handlePromptClose(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session *editor.Session) {
		session.ClosePrompt()
	})
}

func (h handlers) handleUnlock(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	code := r.PostFormValue("code")

	entry.mu.Lock()
	granted := entry.editor.SubmitCode(code, h.adminCode)
	entry.mu.Unlock()

	if granted {
		if err := issueAdminCookie(w, r, h.jwtKey); err != nil {
			log.Printf("issue admin cookie: %v", err)
		}
		flash.Write(w, r, flash.Success("Admin access granted!"))
	} else {
		flash.Write(w, r, flash.Error("Invalid admin code"))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h handlers) handleEditStart(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	details, err := h.service.GetDetails(r.Context())
	if err != nil {
		log.Printf("get wedding details: %v", err)
		flash.Write(w, r, flash.Error("Failed to load details"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	entry.mu.Lock()
	if hasAdminGrant(r, h.jwtKey) {
		entry.editor.AdminGranted = true
	}
	err = entry.editor.StartEditing(details)
	entry.mu.Unlock()

	if err != nil {
		webErr := editErrorToWeb(err)
		http.Error(w, webErr.Error(), weberrors.HTTPStatus(webErr))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h handlers) handleEditCancel(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session *editor.Session) {
		session.Cancel()
	})
}

func (h handlers) handleCeremonyAdd(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	entry.mu.Lock()
	err := applyDraftForm(entry.editor, r)
	if err == nil {
		err = entry.editor.AddCeremony()
	}
	entry.mu.Unlock()

	h.finishDraftMutation(w, r, err)
}

func (h handlers) handleCeremonyRemove(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid ceremony index", http.StatusBadRequest)
		return
	}

	entry.mu.Lock()
	applyErr := applyDraftForm(entry.editor, r)
	if applyErr == nil {
		applyErr = entry.editor.RemoveCeremony(index)
	}
	entry.mu.Unlock()

	h.finishDraftMutation(w, r, applyErr)
}

func (h handlers) handleEditSave(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	entry.mu.Lock()
	err := applyDraftForm(entry.editor, r)
	var draft wedding.Details
	if err == nil {
		draft, err = entry.editor.BeginSave()
	}
	entry.mu.Unlock()

	switch {
	case errors.Is(err, editor.ErrSaveInFlight):
		// Single-flight: a save is already pending for this session.
		flash.Write(w, r, flash.Info("Save already in progress"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case err != nil:
		webErr := editErrorToWeb(err)
		http.Error(w, webErr.Error(), weberrors.HTTPStatus(webErr))
		return
	}

	if err := h.service.UpdateDetails(r.Context(), draft); err != nil {
		log.Printf("update wedding details: %v", err)
		entry.mu.Lock()
		entry.editor.FailSave()
		entry.mu.Unlock()
		flash.Write(w, r, flash.Error("Failed to update details"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	entry.mu.Lock()
	entry.editor.CompleteSave()
	entry.mu.Unlock()
	flash.Write(w, r, flash.Success("Wedding details updated successfully!"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// withSession runs one locked editor transition and redirects home.
func (h handlers) withSession(w http.ResponseWriter, r *http.Request, fn func(*editor.Session)) {
	entry, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	entry.mu.Lock()
	fn(entry.editor)
	entry.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h handlers) requireSession(w http.ResponseWriter, r *http.Request) (*sessionEntry, bool) {
	entry, err := h.sessions.resolve(w, r)
	if err != nil {
		log.Printf("resolve session: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	return entry, true
}

func (h handlers) finishDraftMutation(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	webErr := editErrorToWeb(err)
	http.Error(w, webErr.Error(), weberrors.HTTPStatus(webErr))
}

// editErrorToWeb classifies editor transition failures for HTTP mapping.
func editErrorToWeb(err error) error {
	switch {
	case errors.Is(err, editor.ErrNotGranted):
		return weberrors.E(weberrors.KindForbidden, "admin access not granted")
	case errors.Is(err, editor.ErrNotEditing):
		return weberrors.E(weberrors.KindConflict, "not in edit mode")
	case errors.Is(err, editor.ErrCeremonyIndex):
		return weberrors.E(weberrors.KindInvalidInput, "invalid ceremony index")
	case errors.Is(err, editor.ErrUnknownField):
		return weberrors.E(weberrors.KindInvalidInput, "unknown ceremony field")
	default:
		return weberrors.E(weberrors.KindInvalidInput, "invalid request")
	}
}

func invitationView(details wedding.Details) templates.Invitation {
	view := templates.Invitation{
		GroomName:      details.GroomName,
		BrideName:      details.BrideName,
		InvitationText: details.InvitationText,
		Ceremonies:     make([]templates.Ceremony, 0, len(details.Ceremonies)),
	}
	for _, ceremony := range details.Ceremonies {
		view.Ceremonies = append(view.Ceremonies, templates.Ceremony{
			Name:     ceremony.Name,
			Date:     ceremony.Date,
			Time:     ceremony.Time,
			Location: ceremony.Location,
			Address:  ceremony.Address,
			MapLink:  ceremony.MapLink,
		})
	}
	return view
}
