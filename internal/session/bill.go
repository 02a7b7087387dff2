package session

// Bill is derived from the ledger at session end and never persisted
// remotely. Amounts are in the smallest currency unit.
type Bill struct {
	Subtotal   int64    `json:"subtotal"`
	TaxPercent int      `json:"tax_percent"`
	Tax        int64    `json:"tax"`
	Total      int64    `json:"total"`
	Orders     []*Order `json:"orders"`
}

// ComputeBill applies the venue's tax percentage to the subtotal, rounding
// half-up on the smallest unit.
func ComputeBill(subtotal int64, taxPercent int) Bill {
	tax := (subtotal*int64(taxPercent) + 50) / 100
	return Bill{
		Subtotal:   subtotal,
		TaxPercent: taxPercent,
		Tax:        tax,
		Total:      subtotal + tax,
	}
}
