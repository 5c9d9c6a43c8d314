package incident

// Hints is the structured output of the external text classifier. All fields
// are optional; nil means the classifier had nothing to say.
type Hints struct {
	Category     *string
	Urgency      *string
	InjuredCount *int
	Trapped      *bool
	WaterLevelM  *float64
}

// ApplyHints fills classifier output into fields the caller left unset.
// Caller-supplied values always win; enrichment never overwrites.
func (incident *Incident) ApplyHints(hints Hints) {
	if incident.Category == nil && hints.Category != nil {
		incident.Category = hints.Category
	}
	if incident.Urgency == nil && hints.Urgency != nil {
		incident.Urgency = hints.Urgency
	}
	if incident.InjuredCount == nil && hints.InjuredCount != nil {
		incident.InjuredCount = hints.InjuredCount
	}
	if incident.Trapped == nil && hints.Trapped != nil {
		incident.Trapped = hints.Trapped
	}
	if incident.WaterLevelM == nil && hints.WaterLevelM != nil {
		incident.WaterLevelM = hints.WaterLevelM
	}
}
