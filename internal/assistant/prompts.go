package assistant

import (
	"fmt"
	"strings"

	"ficct.app/scrum/internal/model"
)

const assistantSystemPrompt = `You are the project assistant for a Scrum/Kanban tracker.
Answer questions about issues, sprints and team workload using ONLY the
context provided below. Reference issues by their key (e.g. PAY-42).
If the context does not contain the answer, say so plainly instead of
guessing. Answer in the language the question was asked in.`

// buildContextBlock renders retrieved issues into the prompt context.
func buildContextBlock(issues []RetrievedIssue) string {
	if len(issues) == 0 {
		return "No matching issues were found."
	}
	var b strings.Builder
	b.WriteString("Relevant issues:\n")
	for _, r := range issues {
		fmt.Fprintf(&b, "- [%s] %s (priority %s", r.Key, r.Issue.Title, r.Issue.Priority)
		if r.Issue.IsBlocked {
			b.WriteString(", blocked")
		}
		if r.Issue.StoryPoints != nil {
			fmt.Fprintf(&b, ", %d points", *r.Issue.StoryPoints)
		}
		b.WriteString(")\n")
		if r.Issue.Description != "" {
			desc := r.Issue.Description
			// Clip on runes so accented text never splits mid-character.
			if runes := []rune(desc); len(runes) > 300 {
				desc = string(runes[:300]) + "…"
			}
			fmt.Fprintf(&b, "  %s\n", desc)
		}
	}
	return b.String()
}

var summaryWordBudget = map[model.SummaryLength]int{
	model.SummaryLengthShort:    50,
	model.SummaryLengthStandard: 150,
	model.SummaryLengthDetailed: 300,
}

func summarySystemPrompt(length model.SummaryLength) string {
	budget, ok := summaryWordBudget[length]
	if !ok {
		budget = summaryWordBudget[model.SummaryLengthStandard]
	}
	return fmt.Sprintf(`You summarize software project activity for busy team leads.
Write a factual summary of at most %d words. Mention concrete issue keys
where relevant. No preamble, no bullet-point headers, just the summary.`, budget)
}
