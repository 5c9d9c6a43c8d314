// Package classifier is a rule-based stand-in for the external text
// classification service. It keys on the same phrases the production model was
// bootstrapped from and keeps the dispatch core runnable without it.
package classifier

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"relief-dispatch/internal/domain/incident"
)

// Rules implements ports.Classifier with keyword matching and small regexes.
type Rules struct{}

// NewRules constructs the rule-based classifier.
func NewRules() *Rules {
	return &Rules{}
}

var (
	medicalKeywords  = []string{"heart attack", "unconscious", "severe bleeding", "not breathing"}
	rescueKeywords   = []string{"fire", "building collapse", "trapped"}
	floodKeywords    = []string{"flood", "water rising", "water level"}
	suppliesKeywords = []string{"no food", "no water", "supplies"}

	injuredRe    = regexp.MustCompile(`(\d+)\s+injured`)
	waterLevelRe = regexp.MustCompile(`water\s+(\d+(?:\.\d+)?)m`)
)

// Classify infers category/urgency labels and structured hints from free text.
// It never fails; fields it cannot infer stay nil.
func (r *Rules) Classify(_ context.Context, text string) (incident.Hints, error) {
	lower := strings.ToLower(text)

	category, urgency := classify(lower)
	hints := incident.Hints{
		Category: &category,
		Urgency:  &urgency,
	}

	if m := injuredRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			hints.InjuredCount = &n
		}
	}
	if strings.Contains(lower, "trapped") {
		trapped := true
		hints.Trapped = &trapped
	}
	if m := waterLevelRe.FindStringSubmatch(lower); m != nil {
		if level, err := strconv.ParseFloat(m[1], 64); err == nil {
			hints.WaterLevelM = &level
		}
	}

	return hints, nil
}

func classify(lower string) (category, urgency string) {
	switch {
	case containsAny(lower, medicalKeywords):
		return "medical", incident.UrgencyCritical
	case containsAny(lower, rescueKeywords):
		return "rescue", incident.UrgencyCritical
	case containsAny(lower, floodKeywords):
		return "flood", incident.UrgencyUrgent
	case containsAny(lower, suppliesKeywords):
		return "supplies", incident.UrgencyUrgent
	default:
		return "other", incident.UrgencyLow
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
