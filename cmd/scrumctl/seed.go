package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a demo organization with a project, sprint and issues",
	Run:   runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	services := a.services()

	alice, err := services.Users().Create(ctx, "Alice Fernandez", "alice@example.com", nil)
	if err != nil {
		fail(fmt.Errorf("creating user: %w", err))
	}
	bruno, err := services.Users().Create(ctx, "Bruno Vaca", "bruno@example.com", nil)
	if err != nil {
		fail(fmt.Errorf("creating user: %w", err))
	}

	org, err := services.Organizations().Create(ctx, "Demo Org", nil)
	if err != nil {
		fail(fmt.Errorf("creating organization: %w", err))
	}

	ws, err := services.Workspaces().Create(ctx, org.ID, "Engineering", nil, nil)
	if err != nil {
		fail(fmt.Errorf("creating workspace: %w", err))
	}

	desc := "Payment platform backend"
	project, err := services.Projects().Create(ctx, ws.ID, "Payments", "PAY", &desc, nil, alice.ID)
	if err != nil {
		fail(fmt.Errorf("creating project: %w", err))
	}
	if _, err := services.Projects().AddMember(ctx, project.ID, bruno.ID, model.MemberRoleMember); err != nil {
		fail(fmt.Errorf("adding member: %w", err))
	}

	types, err := services.Projects().ListIssueTypes(ctx, project.ID)
	if err != nil {
		fail(err)
	}
	typeByName := make(map[string]int64, len(types))
	for _, t := range types {
		typeByName[t.Name] = t.ID
	}

	start := time.Now().AddDate(0, 0, -3)
	end := start.AddDate(0, 0, 14)
	sprint, err := services.Sprints().Create(ctx, project.ID, "Sprint 1", "Checkout flow MVP", &start, &end, alice.ID)
	if err != nil {
		fail(fmt.Errorf("creating sprint: %w", err))
	}

	points := func(p int32) *int32 { return &p }
	demoIssues := []struct {
		typeName string
		title    string
		desc     string
		priority model.Priority
		points   *int32
		assignee *int64
		inSprint bool
	}{
		{"Story", "Card checkout happy path", "Customer pays with a stored card and gets a receipt.", model.PriorityP1, points(5), &alice.ID, true},
		{"Story", "Refund flow", "Support agents can refund a captured payment.", model.PriorityP2, points(3), &bruno.ID, true},
		{"Bug", "Webhook retries duplicate charges", "Idempotency key is ignored on the retry path.", model.PriorityP1, points(2), &bruno.ID, true},
		{"Task", "Rotate payment provider API keys", "", model.PriorityP3, points(1), nil, false},
		{"Story", "Apple Pay support", "Investigate and wire the Apple Pay session flow.", model.PriorityP3, nil, nil, false},
	}

	for _, d := range demoIssues {
		input := service.CreateIssueInput{
			ProjectID:   project.ID,
			IssueTypeID: typeByName[d.typeName],
			Title:       d.title,
			Description: d.desc,
			Priority:    d.priority,
			ReporterID:  alice.ID,
			AssigneeID:  d.assignee,
			StoryPoints: d.points,
		}
		if d.inSprint {
			input.SprintID = &sprint.ID
		}
		if _, err := services.Issues().Create(ctx, input); err != nil {
			fail(fmt.Errorf("creating issue %q: %w", d.title, err))
		}
	}

	if _, err := services.Sprints().Start(ctx, sprint.ID); err != nil {
		fail(fmt.Errorf("starting sprint: %w", err))
	}

	fmt.Printf("Seeded org %d, workspace %d, project %s (%d), sprint %d with %d issues\n",
		org.ID, ws.ID, project.Key, project.ID, sprint.ID, len(demoIssues))
}
