package billing

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	cerrors "github.com/jrsteele09/billing-console/internal/errors"
)

// Ledger is an in-memory store of every assembly's billing records. All reads return copies.
type Ledger struct {
	mu           sync.RWMutex
	now          func() time.Time
	transactions map[string]*Transaction
	deposits     map[string]Deposit
	customers    map[string]Customer
	zones        map[string]Zone
	readings     map[string]MeterReading
	assets       map[string]Asset
}

type LedgerOption func(*Ledger)

// WithClock replaces time.Now for records created without a timestamp.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{
		now:          time.Now,
		transactions: make(map[string]*Transaction),
		deposits:     make(map[string]Deposit),
		customers:    make(map[string]Customer),
		zones:        make(map[string]Zone),
		readings:     make(map[string]MeterReading),
		assets:       make(map[string]Asset),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func (l *Ledger) AddTransaction(t Transaction) (Transaction, error) {
	if t.AssemblyID == "" || t.CustomerID == "" {
		return Transaction{}, fmt.Errorf("[Ledger AddTransaction] assembly and customer are required: %w", cerrors.ErrMissingArgument)
	}
	if t.Amount <= 0 {
		return Transaction{}, fmt.Errorf("[Ledger AddTransaction] amount must be positive: %w", cerrors.ErrInvalidRequest)
	}
	t.ID = newID(t.ID)
	if t.Currency == "" {
		t.Currency = DefaultCurrency
	}
	if t.Status == "" {
		t.Status = StatusCompleted
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = l.now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.transactions[t.ID]; exists {
		return Transaction{}, fmt.Errorf("[Ledger AddTransaction] transaction %s: %w", t.ID, cerrors.ErrConflict)
	}
	stored := t
	l.transactions[t.ID] = &stored
	return t, nil
}

// VoidTransaction marks a completed transaction as voided. Voiding twice is a conflict.
func (l *Ledger) VoidTransaction(assemblyID, id, reason, voidedBy string) (Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Transaction{}, fmt.Errorf("[Ledger VoidTransaction] a reason is required: %w", cerrors.ErrMissingArgument)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.transactions[id]
	if !ok || t.AssemblyID != assemblyID {
		return Transaction{}, fmt.Errorf("[Ledger VoidTransaction] transaction %s: %w", id, cerrors.ErrNotFound)
	}
	if t.IsVoided() {
		return Transaction{}, fmt.Errorf("[Ledger VoidTransaction] transaction %s already voided: %w", id, cerrors.ErrConflict)
	}
	t.Status = StatusVoided
	t.VoidReason = reason
	t.VoidedBy = voidedBy
	return *t, nil
}

// Transactions returns an assembly's transactions, newest first.
func (l *Ledger) Transactions(assemblyID string) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transaction, 0)
	for _, t := range l.transactions {
		if t.AssemblyID == assemblyID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (l *Ledger) AddDeposit(d Deposit) (Deposit, error) {
	if d.AssemblyID == "" || d.CollectorID == "" {
		return Deposit{}, fmt.Errorf("[Ledger AddDeposit] assembly and collector are required: %w", cerrors.ErrMissingArgument)
	}
	d.ID = newID(d.ID)
	if d.Currency == "" {
		d.Currency = DefaultCurrency
	}
	if d.DepositedAt.IsZero() {
		d.DepositedAt = l.now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deposits[d.ID] = d
	return d, nil
}

// Deposits returns an assembly's deposits, newest first.
func (l *Ledger) Deposits(assemblyID string) []Deposit {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Deposit, 0)
	for _, d := range l.deposits {
		if d.AssemblyID == assemblyID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DepositedAt.Equal(out[j].DepositedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].DepositedAt.After(out[j].DepositedAt)
	})
	return out
}

func (l *Ledger) AddCustomer(c Customer) (Customer, error) {
	if c.AssemblyID == "" || c.ZoneID == "" {
		return Customer{}, fmt.Errorf("[Ledger AddCustomer] assembly and zone are required: %w", cerrors.ErrMissingArgument)
	}
	c.ID = newID(c.ID)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.customers[c.ID] = c
	return c, nil
}

func (l *Ledger) AddZone(z Zone) (Zone, error) {
	if z.AssemblyID == "" {
		return Zone{}, fmt.Errorf("[Ledger AddZone] assembly is required: %w", cerrors.ErrMissingArgument)
	}
	z.ID = newID(z.ID)
	z.CollectorIDs = append([]string(nil), z.CollectorIDs...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zones[z.ID] = z
	return z, nil
}

// Zone returns a zone with its current customer count.
func (l *Ledger) Zone(assemblyID, id string) (Zone, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	z, ok := l.zones[id]
	if !ok || z.AssemblyID != assemblyID {
		return Zone{}, fmt.Errorf("[Ledger Zone] zone %s: %w", id, cerrors.ErrNotFound)
	}
	z.CollectorIDs = append([]string(nil), z.CollectorIDs...)
	z.Customers = 0
	for _, c := range l.customers {
		if c.ZoneID == id {
			z.Customers++
		}
	}
	return z, nil
}

func (l *Ledger) AddMeterReading(m MeterReading) (MeterReading, error) {
	if m.AssemblyID == "" || m.MeterID == "" {
		return MeterReading{}, fmt.Errorf("[Ledger AddMeterReading] assembly and meter are required: %w", cerrors.ErrMissingArgument)
	}
	m.ID = newID(m.ID)
	if m.ReadAt.IsZero() {
		m.ReadAt = l.now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.readings[m.ID] = m
	return m, nil
}

// MeterReadings returns an assembly's readings, newest first.
func (l *Ledger) MeterReadings(assemblyID string) []MeterReading {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]MeterReading, 0)
	for _, m := range l.readings {
		if m.AssemblyID == assemblyID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReadAt.Equal(out[j].ReadAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ReadAt.After(out[j].ReadAt)
	})
	return out
}

func (l *Ledger) AddAsset(a Asset) (Asset, error) {
	if a.AssemblyID == "" {
		return Asset{}, fmt.Errorf("[Ledger AddAsset] assembly is required: %w", cerrors.ErrMissingArgument)
	}
	if a.Kind != AssetPumpStation && a.Kind != AssetStorageTank {
		return Asset{}, fmt.Errorf("[Ledger AddAsset] unknown asset kind %q: %w", a.Kind, cerrors.ErrInvalidRequest)
	}
	a.ID = newID(a.ID)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.assets[a.ID] = a
	return a, nil
}

// Assets returns an assembly's assets ordered by kind then name.
func (l *Ledger) Assets(assemblyID string) []Asset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Asset, 0)
	for _, a := range l.assets {
		if a.AssemblyID == assemblyID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Summary totals an assembly's ledger. Voided transactions count toward neither revenue nor visits.
func (l *Ledger) Summary(assemblyID string) Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s := Summary{AssemblyID: assemblyID, Currency: DefaultCurrency}
	for _, t := range l.transactions {
		if t.AssemblyID != assemblyID {
			continue
		}
		s.Transactions++
		if t.IsVoided() {
			s.Voided++
			continue
		}
		s.Revenue += t.Amount
		s.CollectorVisits++
	}
	for _, d := range l.deposits {
		if d.AssemblyID == assemblyID {
			s.Deposits += d.Amount
		}
	}
	for _, c := range l.customers {
		if c.AssemblyID == assemblyID && c.Balance > 0 {
			s.Debt += c.Balance
		}
	}
	return s
}
