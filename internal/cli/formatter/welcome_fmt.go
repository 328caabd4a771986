package formatter

import "strings"

// FormatWelcome renders the banner shown on the load screen.
func FormatWelcome() string {
	var b strings.Builder

	b.WriteString(StylePurple.Render("  orthoplan") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString(StyleDim.Render("  Step through an aligner setup: attachments, IPR and the map per step.") + "\n\n")
	b.WriteString("  " + StyleGreen.Render("paste") + StyleDim.Render("      Paste plan JSON below, then ctrl+s") + "\n")
	b.WriteString("  " + StyleGreen.Render("ctrl+e") + StyleDim.Render("     Load the built-in sample") + "\n")
	b.WriteString("  " + StyleGreen.Render("ctrl+r") + StyleDim.Render("     Fetch a document from the remote store") + "\n")
	b.WriteString("  " + StyleGreen.Render("ctrl+l") + StyleDim.Render("     Open the plan library") + "\n")

	return b.String()
}
