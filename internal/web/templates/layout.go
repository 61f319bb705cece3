package templates

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const appName = "Golden City Invite"

// Layout renders the full invitation page shell around the view or edit body.
func Layout(page Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		b.WriteString("<meta charset=\"utf-8\">\n")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(pageTitle(page.Invitation)))
		b.WriteString("</head>\n<body>\n")

		if page.Toast != nil {
			writeToast(&b, *page.Toast)
		}

		if page.Editing {
			writeEditForm(&b, page.Draft)
		} else {
			writeInvitation(&b, page.Invitation)
			writeAdminControls(&b, page)
		}

		// The edit form is a working draft; reloading it on remote saves
		// would clobber in-progress typing. Last write wins at save time.
		if !page.Editing {
			writeEventStreamScript(&b)
		}
		b.WriteString("</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// pageTitle composes the document title from the couple's names.
func pageTitle(inv Invitation) string {
	names := strings.TrimSpace(inv.GroomName + " & " + inv.BrideName)
	if names == "&" {
		return appName
	}
	return names + " | " + appName
}

func writeToast(b *strings.Builder, toast Toast) {
	fmt.Fprintf(b, "<div class=\"toast toast-%s\" role=\"status\">%s</div>\n",
		html.EscapeString(toast.Kind), html.EscapeString(toast.Message))
}

// writeEventStreamScript subscribes the page to committed record updates so
// every open browser converges on the latest saved value.
func writeEventStreamScript(b *strings.Builder) {
	b.WriteString("<script>\n")
	b.WriteString("new EventSource(\"/events\").addEventListener(\"details\", function () { window.location.reload(); });\n")
	b.WriteString("</script>\n")
}
