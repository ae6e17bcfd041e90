package entity

import "time"

// Contractor is an outside weaver who takes raw material against orders.
// Contractors are never deleted: orders and payments reference them by id,
// so removal would orphan ledger history.
type Contractor struct {
	ID          string
	Name        string
	ContactInfo string
	CreatedAt   time.Time
}
