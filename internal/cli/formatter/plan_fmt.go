package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/derive"
	"github.com/alexanderramin/orthoplan/internal/domain"
)

// FormatStepTable renders the whole breakdown as a plain table, one line per
// step.
func FormatStepTable(p *domain.Plan) string {
	headers := []string{"STEP", "ATTACHMENTS", "IPR"}
	rows := make([][]string, 0, p.MaxBound()+1)
	for _, row := range derive.StepTable(p) {
		var atts []string
		for _, a := range row.Attachments {
			atts = append(atts, AttachmentBadge(row, a))
		}
		var ipr []string
		for _, e := range row.Ipr {
			ipr = append(ipr, IprLine(e))
		}
		rows = append(rows, []string{
			strconv.Itoa(row.Step),
			orDash(strings.Join(atts, ", ")),
			orDash(strings.Join(ipr, ", ")),
		})
	}
	return RenderTable(headers, rows)
}

// FormatStepReport renders everything the viewer shows for one step: the
// summary, the map with its gap markers, and the breakdown row.
func FormatStepReport(p *domain.Plan, step int, label string) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Step %d · %s", step, label)) + "\n\n")
	b.WriteString(RenderStats(derive.Summarize(p)) + "\n\n")
	b.WriteString(RenderDentition(p, step, "") + "\n\n")
	b.WriteString(RenderGapList(p, step) + "\n")
	b.WriteString(RenderLegend() + "\n\n")
	b.WriteString(RenderBreakdownRow(derive.RowAt(p, step), true, 0))
	return b.String()
}

// FormatPlanOutline renders the plan's collections as a tree grouped by kind.
func FormatPlanOutline(p *domain.Plan) string {
	name := p.SetupName
	if name == "" {
		name = p.DisplayID()
	}
	items := []TreeItem{{Title: name, Accent: true, Detail: fmt.Sprintf("U %d / L %d", p.UpperEndIn, p.LowerEndIn)}}

	type group struct {
		title string
		items []TreeItem
	}
	groups := []group{
		{title: "Attachments"},
		{title: "IPR"},
		{title: "Precision cuts"},
		{title: "Extractions"},
	}
	for _, a := range p.Attachments {
		groups[0].items = append(groups[0].items, TreeItem{
			Prefix: fmt.Sprintf("%d-%d", a.BeginTime, a.EndTime),
			Title:  a.Tooth,
			Detail: a.Name,
		})
	}
	for _, e := range p.IprEvents {
		groups[1].items = append(groups[1].items, TreeItem{
			Prefix: "@" + strconv.Itoa(e.Step),
			Title:  e.Tooth,
			Detail: fmt.Sprintf("M %s D %s", Millimeters(e.Mesial), Millimeters(e.Distal)),
		})
	}
	for _, c := range p.PrecisionCuts {
		groups[2].items = append(groups[2].items, TreeItem{
			Prefix: fmt.Sprintf("%d-%d", c.BeginTime, c.EndTime),
			Title:  c.Tooth,
			Detail: c.Name,
		})
	}
	for _, x := range p.Extractions {
		groups[3].items = append(groups[3].items, TreeItem{
			Prefix: "@" + strconv.Itoa(x.Step),
			Title:  x.Tooth,
		})
	}

	for gi, g := range groups {
		items = append(items, TreeItem{
			Title:  fmt.Sprintf("%s (%d)", g.title, len(g.items)),
			Level:  1,
			IsLast: gi == len(groups)-1,
		})
		for i, it := range g.items {
			it.Level = 2
			it.IsLast = i == len(g.items)-1
			items = append(items, it)
		}
	}
	return RenderTree(items)
}

// FormatLibraryList renders saved plans as a table, newest first.
func FormatLibraryList(entries []*domain.LibraryEntry) string {
	if len(entries) == 0 {
		return Dim("No saved plans.") + "\n"
	}
	headers := []string{"ID", "LABEL", "SOURCE", "PLAN", "ALIGNERS", "UPDATED"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.ID),
			Bold(orDash(e.Label)),
			SourceBadge(e.Source),
			StylePurple.Render(e.Plan.DisplayID()),
			fmt.Sprintf("U %d / L %d", e.Plan.UpperEndIn, e.Plan.LowerEndIn),
			HumanTimestamp(e.UpdatedAt),
		})
	}
	return RenderTable(headers, rows)
}

// FormatToothHistory renders every IPR event on tooth as a table ordered by
// step, marking the current step.
func FormatToothHistory(p *domain.Plan, tooth string, current int) string {
	history := derive.History(p, tooth)
	if len(history) == 0 {
		return Dim("No IPR recorded for this tooth.")
	}
	rows := make([][]string, 0, len(history))
	for _, e := range history {
		step := strconv.Itoa(e.Step)
		if e.Step == current {
			step = StyleHeader.Render("▶ " + step)
		}
		rows = append(rows, []string{step, Millimeters(e.Mesial), Millimeters(e.Distal), Bold(Millimeters(e.Total()))})
	}
	return strings.TrimRight(RenderTable([]string{"STEP", "MESIAL", "DISTAL", "TOTAL"}, rows), "\n")
}

// FormatToothAttachments lists every attachment on tooth with its window,
// marking the ones active at step.
func FormatToothAttachments(p *domain.Plan, tooth string, step int) string {
	atts := derive.AttachmentsOn(p, tooth)
	if len(atts) == 0 {
		return Dim("No attachments on this tooth.")
	}
	lines := make([]string, 0, len(atts))
	for i, a := range atts {
		window := fmt.Sprintf("steps %d-%d", a.BeginTime, a.EndTime)
		marker := Dim("○")
		if a.Active(step) {
			marker = StyleBlue.Render("●")
		}
		lines = append(lines, fmt.Sprintf("%s %d. %s  %s", marker, i+1, Bold(orDash(a.Name)), Dim(window)))
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return StyleDim.Render("--")
	}
	return s
}
