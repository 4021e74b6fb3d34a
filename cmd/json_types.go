package cmd

// stepForJSON is a struct used for marshaling a step to JSON for machine-readable output.
type stepForJSON struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
}
