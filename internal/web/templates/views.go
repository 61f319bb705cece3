// File views.go defines view data for invitation page templates.
package templates

// Ceremony holds display data for one event card.
type Ceremony struct {
	// Name is the event title, e.g. "Wedding Ceremony".
	Name string
	// Date is free-form display text.
	Date string
	// Time is free-form display text.
	Time string
	// Location is the venue name.
	Location string
	// Address is the venue street address.
	Address string
	// MapLink is an opaque URL rendered as a directions link when present.
	MapLink string
}

// Invitation holds display data for the invitation page.
type Invitation struct {
	// GroomName and BrideName are the couple's display names.
	GroomName string
	BrideName string
	// InvitationText is the welcome paragraph.
	InvitationText string
	// Ceremonies is the ordered event list.
	Ceremonies []Ceremony
}

// Toast is a one-time notice rendered at the top of the page.
type Toast struct {
	// Kind is success, info, or error.
	Kind string
	// Message is the visible notice text.
	Message string
}

// Page carries everything the page shell needs for one render.
type Page struct {
	Invitation Invitation
	// Editing switches the body from the read-only view to the edit form.
	Editing bool
	// Draft is the form's working copy while editing.
	Draft Invitation
	// AdminGranted controls whether the edit affordance is offered.
	AdminGranted bool
	// PromptOpen shows the admin code prompt.
	PromptOpen bool
	// Toast is the optional one-time notice.
	Toast *Toast
}
