package model

// Intent is the inferred search intent of a keyword.
type Intent string

// Intent values.
const (
	IntentCommercial    Intent = "Commercial"
	IntentInformational Intent = "Informational"
	IntentInvestigation Intent = "Investigation"
)

// Trend is the direction a keyword's position moved between snapshots.
type Trend string

// Trend values.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Action is a recommended next step for a keyword.
type Action string

// Recommended actions, in rule priority order.
const (
	ActionReinforce       Action = "reinforce (money keyword)"
	ActionOptimizeCTR     Action = "optimize CTR"
	ActionSupportContent  Action = "create supporting content"
	ActionInvestigateDrop Action = "investigate drop — protect"
	ActionMonitor         Action = "monitor"
)

// OpportunityType labels an opportunity by how close it is to page one.
type OpportunityType string

// Opportunity types.
const (
	OpportunityQuickWin         OpportunityType = "Quick Win"
	OpportunityStrikingDistance OpportunityType = "Striking Distance"
)
