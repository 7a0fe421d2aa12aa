package domain

import "encoding/json"

// ID is an identifier that upstream systems serialize inconsistently,
// sometimes as a JSON number and sometimes as a string. Both forms
// decode into it; the string form is canonical everywhere else.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Category is one spending category from the upstream request payload.
// UserSpent and BasePrice arrive as nullable JSON numbers; a null (or
// absent) value means the upstream has nothing recorded and is treated
// as zero.
type Category struct {
	ID        ID       `json:"id"`
	UserSpent *float64 `json:"userSpent"`
	BasePrice *float64 `json:"basePrice"`
}

// Spent returns the current-period spend for the category, treating
// null as 0.
func (c Category) Spent() float64 {
	if c.UserSpent == nil {
		return 0
	}
	return *c.UserSpent
}

// Base returns the reference-period price for the category, treating
// null as 0.
func (c Category) Base() float64 {
	if c.BasePrice == nil {
		return 0
	}
	return *c.BasePrice
}

// RequestData is the payload fetched from the upstream service for one
// application: the user's spending categories plus the date the base
// prices refer to. ComparisonDate is carried through untouched and takes
// no part in the calculation.
type RequestData struct {
	Categories     []Category `json:"categories"`
	ComparisonDate string     `json:"comparisonDate"`
}
