package services

import (
	"strings"

	"github.com/deniz/careerhub/internal/app/models"
)

// maxRecommendations caps the recommendation list shown on the listing page.
const maxRecommendations = 5

// Recommend derives a short list of opportunities matching a student's
// declared skills and enrolled subjects. Both fields are treated as
// comma-separated keyword lists; an opportunity qualifies when any keyword
// occurs as a case-insensitive substring of its role title or description.
// First-seen order is preserved, duplicates are dropped and the result is
// truncated. No scoring: one hit is as good as five.
func Recommend(profile *models.StudentProfile, opportunities []*models.Opportunity) []*models.Opportunity {
	if profile == nil {
		return nil
	}

	keywords := keywordSet(profile.Skills + "," + profile.EnrolledSubjects)
	if len(keywords) == 0 {
		return nil
	}

	var matches []*models.Opportunity
	seen := map[int64]bool{}
	for _, opp := range opportunities {
		if seen[opp.ID] {
			continue
		}

		text := strings.ToLower(opp.RoleTitle + " " + opp.Description)
		for keyword := range keywords {
			if strings.Contains(text, keyword) {
				matches = append(matches, opp)
				seen[opp.ID] = true
				break
			}
		}

		if len(matches) == maxRecommendations {
			break
		}
	}

	return matches
}

// keywordSet tokenizes a comma-separated field into trimmed, lower-cased
// keywords, dropping empties.
func keywordSet(text string) map[string]bool {
	keywords := map[string]bool{}
	for _, part := range strings.Split(text, ",") {
		keyword := strings.ToLower(strings.TrimSpace(part))
		if keyword != "" {
			keywords[keyword] = true
		}
	}
	return keywords
}
