package election

import "sort"

// SeatTable maps (party, region) to a non-negative seat count. A party or
// region without an entry holds zero seats. Stages build a fresh table and
// never modify one they received.
type SeatTable struct {
	cells map[Party]map[Region]int
}

// NewSeatTable returns an empty table.
func NewSeatTable() SeatTable {
	return SeatTable{cells: make(map[Party]map[Region]int)}
}

// SeatTableFromMap copies m into a new table.
func SeatTableFromMap(m map[Party]map[Region]int) SeatTable {
	t := NewSeatTable()
	for p, row := range m {
		t.addRow(p)
		for r, n := range row {
			t.set(p, r, n)
		}
	}
	return t
}

// addRow creates an empty row for p if it has none.
func (t SeatTable) addRow(p Party) map[Region]int {
	row, ok := t.cells[p]
	if !ok {
		row = make(map[Region]int)
		t.cells[p] = row
	}
	return row
}

func (t SeatTable) set(p Party, r Region, n int) {
	t.addRow(p)[r] = n
}

// Get returns the seats of p in r.
func (t SeatTable) Get(p Party, r Region) int {
	return t.cells[p][r]
}

// HasParty reports whether p has an entry, even an all-zero one.
func (t SeatTable) HasParty(p Party) bool {
	_, ok := t.cells[p]
	return ok
}

// Parties returns the parties with an entry, sorted.
func (t SeatTable) Parties() []Party {
	out := make([]Party, 0, len(t.cells))
	for p := range t.cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Regions returns the regions with an entry in any row, sorted.
func (t SeatTable) Regions() []Region {
	seen := make(map[Region]struct{})
	for _, row := range t.cells {
		for r := range row {
			seen[r] = struct{}{}
		}
	}
	out := make([]Region, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Row returns a copy of p's seats per region.
func (t SeatTable) Row(p Party) map[Region]int {
	out := make(map[Region]int, len(t.cells[p]))
	for r, n := range t.cells[p] {
		out[r] = n
	}
	return out
}

// RowSum returns p's seats across all regions.
func (t SeatTable) RowSum(p Party) int {
	sum := 0
	for _, n := range t.cells[p] {
		sum += n
	}
	return sum
}

// ColumnSum returns the seats of all parties in r.
func (t SeatTable) ColumnSum(r Region) int {
	sum := 0
	for _, row := range t.cells {
		sum += row[r]
	}
	return sum
}

// Total returns the sum of all cells.
func (t SeatTable) Total() int {
	sum := 0
	for _, row := range t.cells {
		for _, n := range row {
			sum += n
		}
	}
	return sum
}

// Filter returns a copy holding only the rows whose party satisfies keep.
func (t SeatTable) Filter(keep func(Party) bool) SeatTable {
	out := NewSeatTable()
	for p, row := range t.cells {
		if !keep(p) {
			continue
		}
		out.addRow(p)
		for r, n := range row {
			out.set(p, r, n)
		}
	}
	return out
}

// ToMap returns a deep copy of the cells.
func (t SeatTable) ToMap() map[Party]map[Region]int {
	out := make(map[Party]map[Region]int, len(t.cells))
	for p := range t.cells {
		out[p] = t.Row(p)
	}
	return out
}

// Equal reports whether both tables hold the same parties and the same
// count in every cell, treating a missing cell as zero.
func (t SeatTable) Equal(o SeatTable) bool {
	if len(t.cells) != len(o.cells) {
		return false
	}
	for p, row := range t.cells {
		orow, ok := o.cells[p]
		if !ok {
			return false
		}
		for r, n := range row {
			if orow[r] != n {
				return false
			}
		}
		for r, n := range orow {
			if row[r] != n {
				return false
			}
		}
	}
	return true
}

// ElementwiseMax returns a table whose every (party, region) cell is the
// larger of the two inputs' cells, a missing cell counting as zero.
func ElementwiseMax(a, b SeatTable) SeatTable {
	out := NewSeatTable()
	for p, row := range a.cells {
		out.addRow(p)
		for r, n := range row {
			out.set(p, r, max(n, b.Get(p, r)))
		}
	}
	for p, row := range b.cells {
		out.addRow(p)
		for r, n := range row {
			out.set(p, r, max(n, a.Get(p, r)))
		}
	}
	return out
}
