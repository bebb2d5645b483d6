package assistant

import (
	"regexp"
	"strings"
	"time"

	"ficct.app/scrum/common/vector"
)

// Intent classifies what a question is really asking for, so retrieval
// can pre-filter the vector index instead of relying on embedding
// similarity alone.
type Intent string

const (
	IntentPriority Intent = "priority_query"
	IntentMember   Intent = "member_query"
	IntentSprint   Intent = "sprint_query"
	IntentStatus   Intent = "status_query"
	IntentTemporal Intent = "temporal_query"
	IntentGeneral  Intent = "general_query"
)

// SearchStrategy tells the retriever where and how to look.
type SearchStrategy struct {
	Intent      Intent
	Namespaces  []string
	Filter      map[string]any
	TopK        int
	Description string
}

const defaultTopK = 10

// Keyword lists cover English and Spanish, the two languages the
// product ships in.
var (
	priorityKeywords = []string{
		"critical", "urgent", "high priority", "medium priority", "low priority",
		"priority", "important", "severity",
		"crítico", "critico", "urgente", "alta prioridad", "prioridad media",
		"baja prioridad", "prioridad", "importante", "severidad",
	}

	memberKeywords = []string{
		"who", "assigned", "assignee", "working on", "responsible", "workload",
		"quién", "quien", "asignado", "asignada", "trabajando en",
		"responsable", "carga de trabajo",
	}

	sprintKeywords = []string{
		"sprint", "iteration", "velocity", "burndown", "ceremony", "retrospective",
		"iteración", "iteracion", "velocidad", "retrospectiva",
	}

	statusKeywords = []string{
		"blocked", "in progress", "in review", "done", "to do", "todo",
		"open", "closed", "resolved", "pending", "stuck",
		"bloqueado", "bloqueada", "en progreso", "en revisión", "en revision",
		"terminado", "terminada", "hecho", "pendiente", "abierto", "abierta",
		"cerrado", "cerrada", "resuelto", "resuelta", "atascado",
	}

	temporalKeywords = []string{
		"today", "yesterday", "this week", "last week", "this month",
		"recent", "recently", "latest", "new",
		"hoy", "ayer", "esta semana", "semana pasada", "este mes",
		"reciente", "recientemente", "último", "ultimo", "últimos", "ultimos",
		"nuevo", "nueva",
	}

	// Unicode classes so accented names like García match.
	fullNamePattern = regexp.MustCompile(`\p{Lu}\p{Ll}+\s+\p{Lu}\p{Ll}+`)
	priorityLevel   = regexp.MustCompile(`\b[pP]([1-4])\b`)

	// Sentence-leading capitalized words that are not people.
	nameStopWords = map[string]bool{
		"What": true, "Who": true, "Which": true, "Where": true, "When": true,
		"Why": true, "How": true, "The": true, "Is": true, "Are": true,
		"Can": true, "Does": true, "Do": true, "Show": true, "List": true,
		"Give": true, "Tell": true, "Find": true, "Get": true,
		"Qué": true, "Que": true, "Quién": true, "Quien": true, "Cuál": true,
		"Cual": true, "Dónde": true, "Donde": true, "Cómo": true, "Como": true,
		"Muestra": true, "Lista": true, "Dame": true, "Busca": true,
	}
)

// Route picks a retrieval strategy for the question. Intents are checked
// in priority order so a question like "who is working on urgent bugs"
// resolves to a priority query with member context rather than the
// other way round.
func Route(question string) SearchStrategy {
	lower := strings.ToLower(question)

	if priorities := detectPriorities(lower); len(priorities) > 0 {
		return SearchStrategy{
			Intent:     IntentPriority,
			Namespaces: []string{vector.NamespaceIssues},
			Filter: map[string]any{
				"priority": map[string]any{"$in": priorities},
			},
			TopK:        defaultTopK,
			Description: "issues filtered by priority " + strings.Join(priorities, ", "),
		}
	}

	if names := detectNames(question); len(names) > 0 || containsAny(lower, memberKeywords) {
		strategy := SearchStrategy{
			Intent:      IntentMember,
			Namespaces:  []string{vector.NamespaceIssues},
			TopK:        defaultTopK,
			Description: "issues by assignee",
		}
		if len(names) > 0 {
			strategy.Filter = map[string]any{
				"assignee_name": map[string]any{"$in": names},
			}
			strategy.Description = "issues assigned to " + strings.Join(names, ", ")
		}
		return strategy
	}

	if containsAny(lower, sprintKeywords) {
		return SearchStrategy{
			Intent:      IntentSprint,
			Namespaces:  []string{vector.NamespaceIssues, vector.NamespaceSprints},
			TopK:        defaultTopK,
			Description: "sprint-scoped search",
		}
	}

	if categories := detectStatusCategories(lower); len(categories) > 0 {
		strategy := SearchStrategy{
			Intent:      IntentStatus,
			Namespaces:  []string{vector.NamespaceIssues},
			TopK:        defaultTopK,
			Description: "issues by workflow state",
		}
		if containsAny(lower, []string{"blocked", "bloqueado", "bloqueada", "stuck", "atascado"}) {
			strategy.Filter = map[string]any{"is_blocked": true}
		} else {
			strategy.Filter = map[string]any{
				"status_category": map[string]any{"$in": categories},
			}
		}
		return strategy
	}

	if containsAny(lower, temporalKeywords) {
		cutoff := time.Now().AddDate(0, 0, -30).Unix()
		return SearchStrategy{
			Intent:     IntentTemporal,
			Namespaces: []string{vector.NamespaceIssues},
			Filter: map[string]any{
				"updated_at": map[string]any{"$gte": cutoff},
			},
			TopK:        defaultTopK,
			Description: "recently updated issues",
		}
	}

	return SearchStrategy{
		Intent:      IntentGeneral,
		Namespaces:  []string{vector.NamespaceIssues},
		TopK:        defaultTopK,
		Description: "general semantic search",
	}
}

func detectPriorities(lower string) []string {
	var priorities []string
	seen := map[string]bool{}
	add := func(ps ...string) {
		for _, p := range ps {
			if !seen[p] {
				seen[p] = true
				priorities = append(priorities, p)
			}
		}
	}

	for _, m := range priorityLevel.FindAllStringSubmatch(lower, -1) {
		add("P" + m[1])
	}
	if strings.Contains(lower, "critical") || strings.Contains(lower, "urgent") ||
		strings.Contains(lower, "crítico") || strings.Contains(lower, "critico") ||
		strings.Contains(lower, "urgente") {
		add("P1", "P2")
	}
	if strings.Contains(lower, "high priority") || strings.Contains(lower, "alta prioridad") {
		add("P2")
	}
	if strings.Contains(lower, "medium priority") || strings.Contains(lower, "prioridad media") {
		add("P3")
	}
	if strings.Contains(lower, "low priority") || strings.Contains(lower, "baja prioridad") {
		add("P4")
	}
	return priorities
}

// detectNames finds person names: "Ana García" style full names, or a
// single capitalized word mid-sentence that is not a question word.
func detectNames(question string) []string {
	var names []string
	seen := map[string]bool{}

	for _, m := range fullNamePattern.FindAllString(question, -1) {
		parts := strings.Fields(m)
		if nameStopWords[parts[0]] {
			continue
		}
		if !seen[m] {
			seen[m] = true
			names = append(names, m)
		}
	}
	if len(names) > 0 {
		return names
	}

	words := strings.Fields(question)
	for i, w := range words {
		trimmed := strings.Trim(w, "?.,!¿¡")
		if trimmed == "" || i == 0 {
			// First word is capitalized by convention, not because it
			// names someone.
			continue
		}
		if len(trimmed) > 1 &&
			trimmed[0] >= 'A' && trimmed[0] <= 'Z' &&
			strings.ToLower(trimmed[1:]) == trimmed[1:] &&
			!nameStopWords[trimmed] {
			if !seen[trimmed] {
				seen[trimmed] = true
				names = append(names, trimmed)
			}
		}
	}
	return names
}

func detectStatusCategories(lower string) []string {
	var categories []string
	add := func(c string) {
		for _, existing := range categories {
			if existing == c {
				return
			}
		}
		categories = append(categories, c)
	}

	if containsAny(lower, []string{"blocked", "bloqueado", "bloqueada", "stuck", "atascado"}) {
		add("in_progress")
	}
	if containsAny(lower, []string{"in progress", "en progreso", "in review", "en revisión", "en revision"}) {
		add("in_progress")
	}
	if containsAny(lower, []string{"done", "closed", "resolved", "terminado", "terminada", "hecho", "cerrado", "cerrada", "resuelto", "resuelta"}) {
		add("done")
	}
	if containsAny(lower, []string{"to do", "todo", "open", "pending", "pendiente", "abierto", "abierta"}) {
		add("todo")
	}
	return categories
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
