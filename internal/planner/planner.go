// Package planner turns project context into an ordered list of part
// category specs. A generative call proposes the plan; any failure falls
// back to static per-project-type defaults, so planning never returns an
// empty list and never errors.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bompilot/internal/llm"
	"bompilot/internal/logger"
	"bompilot/internal/models"
)

const (
	minCategories = 1
	maxCategories = 5
)

// CategorySpec is a planner-proposed logical grouping of parts to source.
// Specs are ephemeral: produced fresh each planning run, never persisted
// directly.
type CategorySpec struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	TargetBudget *float64 `json:"targetBudget"`
	SearchTerms  []string `json:"searchTerms"`
}

// Planner produces category plans for a project.
type Planner struct {
	client llm.Client
}

// New creates a Planner backed by the given generative client.
func New(client llm.Client) *Planner {
	return &Planner{client: client}
}

// Plan returns 1-5 category specs for the project. A malformed generative
// response is discarded wholesale, never partially accepted; the static
// defaults for the project type are returned instead.
func (p *Planner) Plan(ctx context.Context, project models.Project) []CategorySpec {
	log := logger.Get()

	raw, err := p.client.Complete(ctx, buildPrompt(project))
	if err != nil {
		log.Warnw("planner generative call failed, using defaults",
			"project_id", project.ID,
			"project_type", project.Type,
			"error", err.Error(),
		)
		return Defaults(project.Type)
	}

	specs, err := parsePlan(raw)
	if err != nil {
		log.Warnw("planner response rejected, using defaults",
			"project_id", project.ID,
			"error", err.Error(),
		)
		return Defaults(project.Type)
	}

	return specs
}

func buildPrompt(project models.Project) string {
	var sb strings.Builder

	sb.WriteString("Plan the electronic part categories to buy for a hardware project. Return JSON only.\n\n")
	fmt.Fprintf(&sb, "Project type: %s\n", project.Type)
	fmt.Fprintf(&sb, "Complexity (1-10): %d\n", project.Complexity)
	if project.Budget != nil {
		fmt.Fprintf(&sb, "Total budget: %.2f %s\n", *project.Budget, project.Currency)
	}
	if project.Summary != "" {
		sb.WriteString("Summary:\n")
		sb.WriteString(project.Summary)
		sb.WriteString("\n")
	}

	sb.WriteString(`
Return a JSON object with this structure:
{
  "categories": [
    {"name": "Power stage", "description": "Voltage regulation and supply", "targetBudget": 15.0, "searchTerms": ["buck converter", "ldo regulator"]}
  ]
}

Rules:
- Propose 3-5 categories tailored to the project type and complexity
- Every category needs a non-empty name and at least one search term
- targetBudget may be null when the project has no budget
- If the summary mentions testing, include a validation/testing category
- Order categories by importance

Return ONLY the JSON, no other text.`)

	return sb.String()
}

type planResponse struct {
	Categories []CategorySpec `json:"categories"`
}

// parsePlan validates the generative response. No partial acceptance: one
// bad entry rejects the whole plan.
func parsePlan(raw string) ([]CategorySpec, error) {
	cleaned := llm.CleanJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}

	var parsed planResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	if len(parsed.Categories) < minCategories {
		return nil, fmt.Errorf("no categories in plan")
	}

	specs := parsed.Categories
	if len(specs) > maxCategories {
		specs = specs[:maxCategories]
	}

	for i, spec := range specs {
		if strings.TrimSpace(spec.Name) == "" {
			return nil, fmt.Errorf("category %d has no name", i)
		}
		if len(nonEmptyTerms(spec.SearchTerms)) == 0 {
			return nil, fmt.Errorf("category %q has no search terms", spec.Name)
		}
		specs[i].SearchTerms = nonEmptyTerms(spec.SearchTerms)
	}

	return specs, nil
}

func nonEmptyTerms(terms []string) []string {
	var out []string
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			out = append(out, strings.TrimSpace(t))
		}
	}
	return out
}
