package entities

// BatchSummary is the result of one reminder batch run.
type BatchSummary struct {
	Due     int `json:"due"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}
