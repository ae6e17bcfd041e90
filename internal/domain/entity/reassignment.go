package entity

import "time"

// Reassignment is the audit record written when an open order moves to a new
// contractor. The order itself only carries the current contractor; history
// lives here.
type Reassignment struct {
	ID              string
	OrderID         string
	OldContractorID string
	NewContractorID string
	Reason          string
	Date            time.Time
}
