package tui

import (
	"fmt"
	"strings"

	"github.com/hireplan-ai/hireplan/internal/plan"
)

// RenderPlan formats a finished hiring plan for the terminal.
func RenderPlan(p *plan.HiringPlan) string {
	styles := DefaultStyles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("Hiring Plan"))
	b.WriteString("\n")

	b.WriteString(styles.Section.Render("Job Description"))
	b.WriteString("\n")
	b.WriteString(p.JobDescription)
	b.WriteString("\n")

	b.WriteString(styles.Section.Render("Sourcing Channels"))
	b.WriteString("\n")
	if len(p.SourcingChannels) == 0 {
		b.WriteString(styles.Muted.Render("(none suggested)"))
		b.WriteString("\n")
	}
	for _, channel := range p.SourcingChannels {
		b.WriteString("  • " + channel)
		b.WriteString("\n")
	}

	b.WriteString(styles.Section.Render("Interview Process"))
	b.WriteString("\n")
	for i, stage := range p.InterviewStages {
		b.WriteString(styles.Status.Render(fmt.Sprintf("%d. %s", i+1, stage.StageName)))
		b.WriteString("\n")
		b.WriteString("   " + stage.Purpose)
		b.WriteString("\n")
		for _, q := range stage.Questions {
			b.WriteString(styles.Muted.Render("   – " + q))
			b.WriteString("\n")
		}
	}

	b.WriteString(styles.Section.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(p.FinalPlanSummary)
	b.WriteString("\n")

	return styles.Border.Render(b.String())
}
