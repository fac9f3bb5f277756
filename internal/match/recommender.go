// Package match computes skill-based job recommendations. Pure functions
// over id sets; no store access.
package match

import "skillbridge/internal/models"

// JobSkills pairs a job with its required skill ids.
type JobSkills struct {
	Job      models.Job
	SkillIDs []int64
}

// Recommend returns the jobs sharing at least one required skill with the
// resident's declared set (OR semantics, not subset). Deterministic: output
// preserves input job order. An empty resident set or job list yields an
// empty slice, and a job with no linked skills is never recommended.
func Recommend(jobs []JobSkills, residentSkills map[int64]struct{}) []models.Job {
	recommended := []models.Job{}
	if len(residentSkills) == 0 {
		return recommended
	}
	for _, js := range jobs {
		for _, skillID := range js.SkillIDs {
			if _, ok := residentSkills[skillID]; ok {
				recommended = append(recommended, js.Job)
				break
			}
		}
	}
	return recommended
}
