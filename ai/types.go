package ai

// CapabilityInfo describes one search capability offered to the planning service.
type CapabilityInfo struct {
	// Name is the capability identifier (e.g. "semantic", "keyword").
	Name string

	// Description is a one-line summary of what the capability matches.
	Description string
}

// PlanRequest carries everything the planning service needs to select
// capabilities for a query.
type PlanRequest struct {
	// Query is the validated free-text discovery request.
	Query string

	// Identity is the caller's wallet/user identifier, empty when anonymous.
	Identity string

	// Mood is the caller-declared mood tag, if any.
	Mood string

	// Genres lists the caller's genre preferences, if any.
	Genres []string

	// Catalog lists the capabilities available for selection.
	Catalog []CapabilityInfo
}

// PlanResponse is the structured strategy returned by the planning service.
// All fields cross an untrusted boundary and must be validated by the caller.
type PlanResponse struct {
	// Strategy is a short description of the chosen search strategy.
	Strategy string

	// Capabilities lists the selected capability names, in invocation order.
	Capabilities []string

	// Reasoning explains why these capabilities were selected.
	Reasoning string

	// NeedsClarification indicates the query is too ambiguous to search.
	NeedsClarification bool

	// ClarifyingQuestions holds questions for the caller when
	// NeedsClarification is true.
	ClarifyingQuestions []string
}
