package achievement

import (
	"GeniusLabs/internal/models"
)

// CustomPredicate decides a "custom" requirement that has no generic
// threshold semantics.
type CustomPredicate func(stats models.ProfileStats) bool

// Evaluator tests aggregate stats against an immutable catalog. The catalog
// is injected at construction so tests can run with alternate ones; it is
// never mutated after New.
type Evaluator struct {
	catalog []models.Achievement
	custom  map[string]CustomPredicate
}

func NewEvaluator(catalog []models.Achievement, custom map[string]CustomPredicate) *Evaluator {
	owned := make([]models.Achievement, len(catalog))
	copy(owned, catalog)
	return &Evaluator{catalog: owned, custom: custom}
}

func (e *Evaluator) Catalog() []models.Achievement {
	out := make([]models.Achievement, len(e.catalog))
	copy(out, e.catalog)
	return out
}

// Evaluate returns the catalog entries whose requirement is satisfied by
// stats and that are not already unlocked. It never persists anything; the
// caller decides what to do with the result. Unlocks are monotonic: entries
// in alreadyUnlocked are skipped even if stats have since regressed.
func (e *Evaluator) Evaluate(stats models.ProfileStats, alreadyUnlocked map[string]struct{}) []models.Achievement {
	var newly []models.Achievement
	for _, a := range e.catalog {
		if _, ok := alreadyUnlocked[a.ID]; ok {
			continue
		}
		if e.satisfied(a, stats) {
			newly = append(newly, a)
		}
	}
	return newly
}

func (e *Evaluator) satisfied(a models.Achievement, stats models.ProfileStats) bool {
	req := a.Requirement
	switch req.Type {
	case models.RequirementLessonsCompleted:
		return stats.TotalLessonsCompleted >= req.Value
	case models.RequirementModulesCompleted:
		return stats.TotalModulesCompleted >= req.Value
	case models.RequirementScore:
		return stats.TotalScore >= req.Value
	case models.RequirementStreak:
		return stats.CurrentStreak >= req.Value
	case models.RequirementCustom:
		if pred, ok := e.custom[a.ID]; ok {
			return pred(stats)
		}
		return false
	default:
		return false
	}
}
