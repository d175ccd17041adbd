package tool

import (
	"fmt"
	"strings"
)

// SystemPrompt is shared by every generation step.
const SystemPrompt = `You are an expert HR consultant specializing in creating comprehensive hiring plans.
Be thorough and professional in your responses.`

// jobDescriptionExcerptLen bounds how much of the job description is quoted
// back into the sourcing prompt; the full text would dominate the prompt
// without improving channel selection.
const jobDescriptionExcerptLen = 300

func jobDescriptionPrompt(ctx Context) string {
	return fmt.Sprintf(`Create a comprehensive job description for the following role:

Role Details: %s

Please include:
- Job Title
- Company Overview
- Role Summary
- Key Responsibilities (5-7 bullet points)
- Required Qualifications
- Preferred Qualifications
- What We Offer
- Compensation Range (if applicable)

Make it engaging and specific to attract the right candidates.`, ctx.RoleDetails)
}

func sourcingChannelsPrompt(ctx Context) string {
	excerpt := ctx.JobDescription
	if len(excerpt) > jobDescriptionExcerptLen {
		excerpt = excerpt[:jobDescriptionExcerptLen] + "..."
	}

	return fmt.Sprintf(`Based on the role details and job description below, suggest 3-5 diverse and effective sourcing channels
for a startup to find suitable candidates. Consider a mix of common platforms (like LinkedIn, specialized job boards)
and niche communities if applicable.

For each channel, briefly explain (1-2 sentences) why it is suitable for this specific role at a startup.

Role Details: %s

Job Description: %s

Format your response as a numbered list with explanations.`, ctx.RoleDetails, excerpt)
}

func interviewProcessPrompt(ctx Context) string {
	return fmt.Sprintf(`Based on the role details provided, outline a typical multi-stage interview process suitable for hiring
this technical role at a startup.

For each stage, please clearly structure it as follows:
STAGE NAME: [Name of the stage]
PURPOSE: [What this stage aims to assess]
KEY SAMPLE QUESTIONS:
- [Question 1]
- [Question 2]
- [Question 3]

Role Details: %s

Please structure your output clearly following this format for each stage. Ensure each stage is
distinctly separated and begins with "STAGE NAME:".`, ctx.RoleDetails)
}

func planSummaryPrompt(ctx Context) string {
	var channels strings.Builder
	for _, channel := range ctx.SourcingChannels {
		fmt.Fprintf(&channels, "- %s\n", channel)
	}

	var stages strings.Builder
	for _, stage := range ctx.InterviewStages {
		fmt.Fprintf(&stages, "- Stage: %s\n  Purpose: %s\n", stage.StageName, stage.Purpose)
		for _, q := range stage.Questions {
			fmt.Fprintf(&stages, "  Sample Question: %s\n", q)
		}
	}

	return fmt.Sprintf(`Create a comprehensive hiring plan summary with these components:

Role: %s

Job Description:
%s

Suggested Sourcing Channels:
%s
Proposed Interview Process:
%s
Close the summary with concrete next steps for the hiring team: reviewing and customizing the plan,
setting up candidate pipeline tracking, preparing interview scorecards from the suggested questions,
and considering timeline and resource allocation.`,
		ctx.RoleDetails, ctx.JobDescription, channels.String(), stages.String())
}
