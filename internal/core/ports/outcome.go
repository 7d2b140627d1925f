package ports

// UpdateOutcome is the raw result of a single-document update, surfaced so
// callers can distinguish "matched nothing" from "matched but unchanged".
type UpdateOutcome struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// WriteOutcome reports whether a secondary write landed. Partial failures
// are surfaced through it instead of being collapsed into one boolean.
type WriteOutcome struct {
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}
