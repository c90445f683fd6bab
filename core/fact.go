package core

// Fact is a typed hint extracted upstream from a task description, e.g.
// {Type: "ticker", Value: "AAPL"} or {Type: "period", Value: "annual"}.
// Facts steer capability selection; they carry no ordering semantics.
type Fact struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Facts is an unordered collection of typed facts.
type Facts []Fact

// Values collects the values of every fact with the given type, preserving
// the order in which they appear.
func (f Facts) Values(factType string) []string {
	var out []string
	for _, fact := range f {
		if fact.Type == factType {
			out = append(out, fact.Value)
		}
	}
	return out
}

// First returns the value of the first fact with the given type.
func (f Facts) First(factType string) (string, bool) {
	for _, fact := range f {
		if fact.Type == factType {
			return fact.Value, true
		}
	}
	return "", false
}
