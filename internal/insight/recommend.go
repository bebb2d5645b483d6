package insight

import (
	"context"
	"fmt"
	"sort"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

// AssigneeRecommendation scores one candidate for an unassigned issue.
type AssigneeRecommendation struct {
	UserID           int64   `json:"user_id"`
	Name             string  `json:"name"`
	Score            float64 `json:"score"`
	OpenIssues       int64   `json:"open_issues"`
	ResolvedSameType int     `json:"resolved_same_type"`
}

type Recommender interface {
	// RecommendAssignees ranks active members for an issue by current
	// workload, experience with the issue's type, and how urgent the
	// issue is.
	RecommendAssignees(ctx context.Context, issueID int64) ([]AssigneeRecommendation, error)
}

type recommender struct {
	issueStore   store.IssueStore
	projectStore store.ProjectStore
	userStore    store.UserStore
}

func NewRecommender(issueStore store.IssueStore, projectStore store.ProjectStore, userStore store.UserStore) Recommender {
	return &recommender{
		issueStore:   issueStore,
		projectStore: projectStore,
		userStore:    userStore,
	}
}

// Scoring weights. Workload dominates for urgent issues so P1 work does
// not pile onto an already loaded member.
const (
	weightWorkload   = 1.0
	weightExperience = 0.8
	urgentWorkload   = 1.5
)

func (r *recommender) RecommendAssignees(ctx context.Context, issueID int64) ([]AssigneeRecommendation, error) {
	issue, err := r.issueStore.GetByID(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("loading issue: %w", err)
	}

	members, err := r.projectStore.ListMembers(ctx, issue.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	resolved, err := r.issueStore.ListResolvedByType(ctx, issue.ProjectID, issue.IssueTypeID, 50)
	if err != nil {
		return nil, fmt.Errorf("loading resolved issues: %w", err)
	}
	resolvedBy := map[int64]int{}
	for _, ri := range resolved {
		if ri.AssigneeID != nil {
			resolvedBy[*ri.AssigneeID]++
		}
	}

	workloadWeight := weightWorkload
	if issue.Priority == model.PriorityP1 || issue.Priority == model.PriorityP2 {
		workloadWeight = urgentWorkload
	}

	var recommendations []AssigneeRecommendation
	for _, member := range members {
		if !member.IsActive || member.Role == model.MemberRoleViewer {
			continue
		}
		open, err := r.issueStore.CountOpenByAssignee(ctx, issue.ProjectID, member.UserID)
		if err != nil {
			return nil, fmt.Errorf("counting open issues for user %d: %w", member.UserID, err)
		}

		user, err := r.userStore.GetByID(ctx, member.UserID)
		if err != nil {
			if err == store.ErrNotFound {
				continue
			}
			return nil, fmt.Errorf("loading user %d: %w", member.UserID, err)
		}

		experience := resolvedBy[member.UserID]
		score := weightExperience*float64(experience) - workloadWeight*float64(open)

		recommendations = append(recommendations, AssigneeRecommendation{
			UserID:           member.UserID,
			Name:             user.Name,
			Score:            score,
			OpenIssues:       open,
			ResolvedSameType: experience,
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].UserID < recommendations[j].UserID
	})
	return recommendations, nil
}
