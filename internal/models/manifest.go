package models

import "time"

// Manifest summarizes the extent and freshness of a generated API tree.
// It is rebuilt from scratch on every run, never merged with prior state.
type Manifest struct {
	Lottery            string    `json:"lottery"`
	TotalContests      int       `json:"totalContests"`
	LatestContest      *int      `json:"latestContest,omitempty"`
	LastUpdated        time.Time `json:"lastUpdated"`
	AvailableEndpoints []string  `json:"availableEndpoints"`
	Error              string    `json:"error,omitempty"`
}
