// Package billing holds the resource shapes exchanged between the console and the billing
// backend. Amounts are in minor currency units (pesewas for GHS).
package billing

import "time"

const DefaultCurrency = "GHS"

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusVoided    TransactionStatus = "voided"
)

// Transaction is a payment taken by a field collector from a customer.
type Transaction struct {
	ID           string            `json:"id"`
	AssemblyID   string            `json:"assembly_id"`
	ZoneID       string            `json:"zone_id"`
	CustomerID   string            `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	CollectorID  string            `json:"collector_id"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       TransactionStatus `json:"status"`
	VoidReason   string            `json:"void_reason,omitempty"`
	VoidedBy     string            `json:"voided_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func (t Transaction) IsVoided() bool {
	return t.Status == StatusVoided
}

// VoidRequest is the body of POST /api/transactions/{id}/void.
type VoidRequest struct {
	Reason string `json:"reason"`
}

// Deposit is cash banked by a collector.
type Deposit struct {
	ID          string    `json:"id"`
	AssemblyID  string    `json:"assembly_id"`
	CollectorID string    `json:"collector_id"`
	Bank        string    `json:"bank"`
	Reference   string    `json:"reference"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	DepositedAt time.Time `json:"deposited_at"`
}

// Customer is a billed account holder; Balance is the outstanding debt.
type Customer struct {
	ID         string `json:"id"`
	AssemblyID string `json:"assembly_id"`
	ZoneID     string `json:"zone_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Balance    int64  `json:"balance"`
}

type Zone struct {
	ID           string   `json:"id"`
	AssemblyID   string   `json:"assembly_id"`
	Name         string   `json:"name"`
	CollectorIDs []string `json:"collector_ids"`
	Customers    int      `json:"customers"`
}

type MeterReading struct {
	ID         string    `json:"id"`
	AssemblyID string    `json:"assembly_id"`
	ZoneID     string    `json:"zone_id"`
	MeterID    string    `json:"meter_id"`
	CustomerID string    `json:"customer_id"`
	Value      float64   `json:"value"` // cubic metres
	ReadBy     string    `json:"read_by"`
	ReadAt     time.Time `json:"read_at"`
}

type AssetKind string

const (
	AssetPumpStation AssetKind = "pump_station"
	AssetStorageTank AssetKind = "storage_tank"
)

// Asset is a piece of water infrastructure with a map position.
type Asset struct {
	ID         string    `json:"id"`
	AssemblyID string    `json:"assembly_id"`
	Kind       AssetKind `json:"kind"`
	Name       string    `json:"name"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Capacity   int64     `json:"capacity,omitempty"` // litres, storage tanks only
}

// Summary is the dashboard headline for one assembly.
type Summary struct {
	AssemblyID      string `json:"assembly_id"`
	Currency        string `json:"currency"`
	Revenue         int64  `json:"revenue"`
	Debt            int64  `json:"debt"`
	CollectorVisits int    `json:"collector_visits"`
	Deposits        int64  `json:"deposits"`
	Transactions    int    `json:"transactions"`
	Voided          int    `json:"voided"`
}

// Undeposited is revenue collected but not yet banked.
func (s Summary) Undeposited() int64 {
	if s.Deposits >= s.Revenue {
		return 0
	}
	return s.Revenue - s.Deposits
}
