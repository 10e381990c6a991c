package billing

import (
	"fmt"
	"time"
)

// SeedCollectors are the collector user IDs referenced by Seed; the backend seeds matching users.
func SeedCollectors(assemblyID string) []string {
	return []string{assemblyID + "-collector-1", assemblyID + "-collector-2"}
}

// Seed fills the ledger with a small, deterministic data set for one assembly.
func Seed(l *Ledger, assemblyID string, now time.Time) error {
	collectors := SeedCollectors(assemblyID)
	zones := []Zone{
		{ID: assemblyID + "-zone-north", AssemblyID: assemblyID, Name: "North", CollectorIDs: collectors[:1]},
		{ID: assemblyID + "-zone-south", AssemblyID: assemblyID, Name: "South", CollectorIDs: collectors[1:]},
	}
	for _, z := range zones {
		if _, err := l.AddZone(z); err != nil {
			return fmt.Errorf("[billing Seed] zone: %w", err)
		}
	}

	customers := []Customer{
		{ID: assemblyID + "-cust-1", AssemblyID: assemblyID, ZoneID: zones[0].ID, Name: "Kofi Mensah", Phone: "+233201110001", Balance: 12500},
		{ID: assemblyID + "-cust-2", AssemblyID: assemblyID, ZoneID: zones[0].ID, Name: "Akosua Boateng", Phone: "+233201110002", Balance: 0},
		{ID: assemblyID + "-cust-3", AssemblyID: assemblyID, ZoneID: zones[1].ID, Name: "Yaw Asante", Phone: "+233201110003", Balance: 48000},
	}
	for _, c := range customers {
		if _, err := l.AddCustomer(c); err != nil {
			return fmt.Errorf("[billing Seed] customer: %w", err)
		}
	}

	for i, amount := range []int64{5000, 7500, 2000, 15000} {
		c := customers[i%len(customers)]
		t := Transaction{
			ID:           fmt.Sprintf("%s-txn-%d", assemblyID, i+1),
			AssemblyID:   assemblyID,
			ZoneID:       c.ZoneID,
			CustomerID:   c.ID,
			CustomerName: c.Name,
			CollectorID:  collectors[i%len(collectors)],
			Amount:       amount,
			CreatedAt:    now.Add(-time.Duration(i+1) * time.Hour),
		}
		if _, err := l.AddTransaction(t); err != nil {
			return fmt.Errorf("[billing Seed] transaction: %w", err)
		}
	}

	deposit := Deposit{
		ID:          assemblyID + "-dep-1",
		AssemblyID:  assemblyID,
		CollectorID: collectors[0],
		Bank:        "GCB Bank",
		Reference:   "DEP-0001",
		Amount:      7000,
		DepositedAt: now.Add(-30 * time.Minute),
	}
	if _, err := l.AddDeposit(deposit); err != nil {
		return fmt.Errorf("[billing Seed] deposit: %w", err)
	}

	readings := []MeterReading{
		{ID: assemblyID + "-read-1", AssemblyID: assemblyID, ZoneID: zones[0].ID, MeterID: "MTR-1001", CustomerID: customers[0].ID, Value: 132.4, ReadBy: collectors[0], ReadAt: now.Add(-2 * time.Hour)},
		{ID: assemblyID + "-read-2", AssemblyID: assemblyID, ZoneID: zones[1].ID, MeterID: "MTR-2001", CustomerID: customers[2].ID, Value: 88.9, ReadBy: collectors[1], ReadAt: now.Add(-3 * time.Hour)},
	}
	for _, m := range readings {
		if _, err := l.AddMeterReading(m); err != nil {
			return fmt.Errorf("[billing Seed] reading: %w", err)
		}
	}

	assets := []Asset{
		{ID: assemblyID + "-pump-1", AssemblyID: assemblyID, Kind: AssetPumpStation, Name: "Weija Booster", Latitude: 5.5600, Longitude: -0.3340},
		{ID: assemblyID + "-tank-1", AssemblyID: assemblyID, Kind: AssetStorageTank, Name: "Hilltop Reservoir", Latitude: 5.5712, Longitude: -0.3105, Capacity: 500000},
	}
	for _, a := range assets {
		if _, err := l.AddAsset(a); err != nil {
			return fmt.Errorf("[billing Seed] asset: %w", err)
		}
	}
	return nil
}
