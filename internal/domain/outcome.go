package domain

// CalculationOutcome is the terminal result of one calculation task.
// Success is true only when PersonalCPI was computed from at least one
// valid category; otherwise PersonalCPI is nil.
type CalculationOutcome struct {
	ID          string
	PersonalCPI *float64
	Success     bool
}

// FailedOutcome returns the outcome reported when no index value could
// be computed for the request.
func FailedOutcome(id string) CalculationOutcome {
	return CalculationOutcome{ID: id, PersonalCPI: nil, Success: false}
}
