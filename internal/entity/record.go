package entity

// Record is the set of fields pulled out of one daily cash report.
// Every field has a usable zero value: "" for times, 0 for amounts.
type Record struct {
	SourceName    string `json:"source_name"`
	OpeningTime   string `json:"opening_time"`
	ClosingTime   string `json:"closing_time"`
	GrossSales    int64  `json:"gross_sales"`
	Total         int64  `json:"total"`
	CashAmount    int64  `json:"cash_amount"`
	CardAmount    int64  `json:"card_amount"`
	TotalExpenses int64  `json:"total_expenses"`
	Difference    int64  `json:"difference"`
}

// Totals holds column sums across a batch of records.
type Totals struct {
	GrossSales    int64 `json:"gross_sales"`
	Total         int64 `json:"total"`
	CashAmount    int64 `json:"cash_amount"`
	CardAmount    int64 `json:"card_amount"`
	TotalExpenses int64 `json:"total_expenses"`
	Difference    int64 `json:"difference"`
}

// Add accumulates r into t.
func (t *Totals) Add(r Record) {
	t.GrossSales += r.GrossSales
	t.Total += r.Total
	t.CashAmount += r.CashAmount
	t.CardAmount += r.CardAmount
	t.TotalExpenses += r.TotalExpenses
	t.Difference += r.Difference
}

// SumRecords returns the column sums of recs.
func SumRecords(recs []Record) Totals {
	var t Totals
	for _, r := range recs {
		t.Add(r)
	}
	return t
}

// Failure names a document that could not be processed at all.
type Failure struct {
	SourceName string `json:"source_name"`
	Reason     string `json:"reason"`
}
