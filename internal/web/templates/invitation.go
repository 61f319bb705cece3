package templates

import (
	"fmt"
	"html"
	"strings"
)

func writeInvitation(b *strings.Builder, inv Invitation) {
	b.WriteString("<main class=\"invitation\">\n")
	fmt.Fprintf(b, "<h1>%s &amp; %s</h1>\n",
		html.EscapeString(inv.GroomName), html.EscapeString(inv.BrideName))
	fmt.Fprintf(b, "<p class=\"invitation-text\">%s</p>\n", html.EscapeString(inv.InvitationText))

	b.WriteString("<section class=\"ceremonies\">\n")
	for _, ceremony := range inv.Ceremonies {
		writeCeremonyCard(b, ceremony)
	}
	b.WriteString("</section>\n")
	b.WriteString("</main>\n")
}

func writeCeremonyCard(b *strings.Builder, ceremony Ceremony) {
	b.WriteString("<article class=\"ceremony\">\n")
	fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(ceremony.Name))
	fmt.Fprintf(b, "<p class=\"ceremony-date\">%s</p>\n", html.EscapeString(ceremony.Date))
	fmt.Fprintf(b, "<p class=\"ceremony-time\">%s</p>\n", html.EscapeString(ceremony.Time))
	fmt.Fprintf(b, "<p class=\"ceremony-location\">%s</p>\n", html.EscapeString(ceremony.Location))
	fmt.Fprintf(b, "<p class=\"ceremony-address\">%s</p>\n", html.EscapeString(ceremony.Address))
	if strings.TrimSpace(ceremony.MapLink) != "" {
		fmt.Fprintf(b, "<a class=\"ceremony-map\" href=\"%s\" rel=\"noopener\">View Map</a>\n",
			html.EscapeString(ceremony.MapLink))
	}
	b.WriteString("</article>\n")
}

func writeAdminControls(b *strings.Builder, page Page) {
	b.WriteString("<footer class=\"admin\">\n")
	switch {
	case page.PromptOpen:
		writeAdminPrompt(b)
	case page.AdminGranted:
		b.WriteString("<form method=\"post\" action=\"/edit\">\n")
		b.WriteString("<button type=\"submit\">Edit Details</button>\n")
		b.WriteString("</form>\n")
	default:
		b.WriteString("<form method=\"post\" action=\"/admin/prompt\">\n")
		b.WriteString("<button type=\"submit\" class=\"admin-open\">Admin</button>\n")
		b.WriteString("</form>\n")
	}
	b.WriteString("</footer>\n")
}

// writeAdminPrompt renders the code prompt. The input is always empty on
// render: both a match and a mismatch clear the entered code.
func writeAdminPrompt(b *strings.Builder) {
	b.WriteString("<form method=\"post\" action=\"/admin/unlock\" class=\"admin-prompt\">\n")
	b.WriteString("<label>Admin code <input type=\"password\" name=\"code\" value=\"\" autofocus></label>\n")
	b.WriteString("<button type=\"submit\">Unlock</button>\n")
	b.WriteString("</form>\n")
	b.WriteString("<form method=\"post\" action=\"/admin/prompt/close\">\n")
	b.WriteString("<button type=\"submit\">Close</button>\n")
	b.WriteString("</form>\n")
}
