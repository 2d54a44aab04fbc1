package core

// NoCategory is the sentinel Highlights.MostFrequentCategory value for
// an empty transaction set. The literal is what the dashboard renders.
const NoCategory = "Nenhuma"

type (
	// MonthBucket is the per-month income/expense breakdown shown in
	// the dashboard trend chart.
	MonthBucket struct {
		Year     int
		Month    int // 1-12
		Income   Money
		Expenses Money
	}

	// Highlights are the derived dashboard statistics.
	Highlights struct {
		LargestExpense       *Transaction // nil when there are no expenses
		MostFrequentCategory string
	}
)

// Balance returns total income minus total expenses. Empty input
// yields zero.
func Balance(txs []Transaction) Money {
	var cents int64
	for _, t := range txs {
		switch t.Kind {
		case Income:
			cents += t.Amount.Cents
		case Expense:
			cents -= t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// MonthlySeries groups transactions by calendar (year, month) and sums
// each kind per group. Buckets appear in first-seen input order; a
// consumer that needs chronological order sorts the result itself.
func MonthlySeries(txs []Transaction) []MonthBucket {
	type key struct{ year, month int }
	index := make(map[key]int)
	var out []MonthBucket
	for _, t := range txs {
		k := key{t.Date.Year(), t.Date.Month()}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, MonthBucket{Year: k.year, Month: k.month})
		}
		switch t.Kind {
		case Income:
			out[i].Income.Cents += t.Amount.Cents
		case Expense:
			out[i].Expenses.Cents += t.Amount.Cents
		}
	}
	return out
}

// ComputeHighlights returns the largest expense (stable first-max over
// input order, nil when there are no expenses) and the most frequent
// category across all transactions regardless of kind. Frequency ties
// go to the lexicographically smallest name so the result is
// deterministic. Empty input yields NoCategory.
func ComputeHighlights(txs []Transaction) Highlights {
	h := Highlights{MostFrequentCategory: NoCategory}

	for i := range txs {
		t := &txs[i]
		if t.Kind != Expense {
			continue
		}
		if h.LargestExpense == nil || t.Amount.Cents > h.LargestExpense.Amount.Cents {
			h.LargestExpense = t
		}
	}

	counts := make(map[string]int)
	for _, t := range txs {
		counts[t.Category]++
	}
	best, bestCount := "", 0
	for name, n := range counts {
		if n > bestCount || (n == bestCount && name < best) {
			best, bestCount = name, n
		}
	}
	if bestCount > 0 {
		h.MostFrequentCategory = best
	}
	return h
}
