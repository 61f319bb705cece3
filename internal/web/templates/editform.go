package templates

import (
	"fmt"
	"html"
	"strings"
)

// writeEditForm renders the draft form. Ceremony add/remove buttons submit
// the same form to their own endpoints so typed-but-unsaved field values ride
// along and survive the mutation.
func writeEditForm(b *strings.Builder, draft Invitation) {
	b.WriteString("<main class=\"editor\">\n")
	b.WriteString("<form method=\"post\" action=\"/edit/save\" class=\"edit-form\">\n")

	fmt.Fprintf(b, "<label>Groom name <input type=\"text\" name=\"groomName\" value=\"%s\"></label>\n",
		html.EscapeString(draft.GroomName))
	fmt.Fprintf(b, "<label>Bride name <input type=\"text\" name=\"brideName\" value=\"%s\"></label>\n",
		html.EscapeString(draft.BrideName))
	fmt.Fprintf(b, "<label>Invitation text <textarea name=\"invitationText\">%s</textarea></label>\n",
		html.EscapeString(draft.InvitationText))

	b.WriteString("<section class=\"edit-ceremonies\">\n")
	for i, ceremony := range draft.Ceremonies {
		writeCeremonyFields(b, i, ceremony)
	}
	b.WriteString("</section>\n")

	b.WriteString("<button type=\"submit\" formaction=\"/edit/ceremonies/add\">Add Ceremony</button>\n")
	b.WriteString("<button type=\"submit\">Save Changes</button>\n")
	b.WriteString("</form>\n")

	b.WriteString("<form method=\"post\" action=\"/edit/cancel\">\n")
	b.WriteString("<button type=\"submit\">Cancel</button>\n")
	b.WriteString("</form>\n")
	b.WriteString("</main>\n")
}

func writeCeremonyFields(b *strings.Builder, index int, ceremony Ceremony) {
	fmt.Fprintf(b, "<fieldset class=\"edit-ceremony\" data-index=\"%d\">\n", index)
	fmt.Fprintf(b, "<legend>Ceremony %d</legend>\n", index+1)

	fields := []struct {
		field string
		label string
		value string
	}{
		{"name", "Name", ceremony.Name},
		{"date", "Date", ceremony.Date},
		{"time", "Time", ceremony.Time},
		{"location", "Location", ceremony.Location},
		{"address", "Address", ceremony.Address},
		{"mapLink", "Map link", ceremony.MapLink},
	}
	for _, f := range fields {
		fmt.Fprintf(b, "<label>%s <input type=\"text\" name=\"ceremony.%d.%s\" value=\"%s\"></label>\n",
			f.label, index, f.field, html.EscapeString(f.value))
	}

	fmt.Fprintf(b, "<button type=\"submit\" formaction=\"/edit/ceremonies/%d/remove\">Remove</button>\n", index)
	b.WriteString("</fieldset>\n")
}
