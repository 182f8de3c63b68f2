package entity

// FrequencyEntry is one label/count pair of a frequency table.
type FrequencyEntry struct {
	Label string
	Count int
}

// FrequencyTable maps canonical labels to occurrence counts. Entry order is
// significant: either a declared option order or descending count with
// first-occurrence-stable ties.
type FrequencyTable struct {
	Entries []FrequencyEntry
}

// Total returns the sum of all counts.
func (ft *FrequencyTable) Total() int {
	total := 0
	for _, e := range ft.Entries {
		total += e.Count
	}
	return total
}

// Get returns the count for a label.
func (ft *FrequencyTable) Get(label string) (int, bool) {
	for _, e := range ft.Entries {
		if e.Label == label {
			return e.Count, true
		}
	}
	return 0, false
}

// Labels returns the labels in table order.
func (ft *FrequencyTable) Labels() []string {
	labels := make([]string, len(ft.Entries))
	for i, e := range ft.Entries {
		labels[i] = e.Label
	}
	return labels
}

// Crosstab is a contingency matrix of two categorical columns.
type Crosstab struct {
	RowLabels []string
	ColLabels []string
	Counts    [][]int // Counts[i][j] for RowLabels[i] x ColLabels[j]
}

// FieldValue is one entry of a detail projection: a declared field with its
// display value ("—" when missing) and its survey definition.
type FieldValue struct {
	Key        string
	Value      string
	Definition string
}

// Summary holds the dataset-level KPI figures.
type Summary struct {
	Procedures  int
	TotalCount  int64
	OnlineCount int64
	OnlineRate  float64
}

// MinistryStat aggregates procedures of one ministry.
type MinistryStat struct {
	Ministry    string
	Procedures  int
	TotalCount  int64
	OnlineCount int64
	OnlineRate  float64
}

// LawStat aggregates procedures sharing one law.
type LawStat struct {
	LawName    string
	Procedures int
	Online     int
	OnlineRate float64
}

// SystemStat aggregates procedures handled by one information system.
type SystemStat struct {
	System      string
	Procedures  int
	TotalCount  int64
	OnlineCount int64
	OnlineRate  float64
}
