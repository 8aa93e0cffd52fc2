// Package matrix provides the growable keyword-by-text relation matrix.
package matrix

import "fmt"

// Matrix is a growable two-dimensional float32 table indexed by
// (row, column) = (keyword node ID, text node ID). Both dimensions grow
// monotonically as nodes are created; once assigned, an index never moves and
// existing cells are never rewritten by growth. New rows and columns start
// zeroed.
type Matrix struct {
	cols int
	rows [][]float32
}

// New returns an empty matrix.
func New() *Matrix {
	return &Matrix{}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return len(m.rows)
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// AddRow appends a zeroed row and returns its index.
func (m *Matrix) AddRow() int {
	m.rows = append(m.rows, make([]float32, m.cols))
	return len(m.rows) - 1
}

// AddColumn appends a zeroed column and returns its index.
func (m *Matrix) AddColumn() int {
	for i := range m.rows {
		m.rows[i] = append(m.rows[i], 0)
	}
	m.cols++
	return m.cols - 1
}

// At returns the cell at (row, col).
func (m *Matrix) At(row, col int) (float32, error) {
	if err := m.check(row, col); err != nil {
		return 0, err
	}
	return m.rows[row][col], nil
}

// Set stores v at (row, col).
func (m *Matrix) Set(row, col int, v float32) error {
	if err := m.check(row, col); err != nil {
		return err
	}
	m.rows[row][col] = v
	return nil
}

// Add adds delta to the cell at (row, col).
func (m *Matrix) Add(row, col int, delta float32) error {
	if err := m.check(row, col); err != nil {
		return err
	}
	m.rows[row][col] += delta
	return nil
}

// Row returns a copy of the given row.
func (m *Matrix) Row(row int) ([]float32, error) {
	if row < 0 || row >= len(m.rows) {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, len(m.rows))
	}
	out := make([]float32, m.cols)
	copy(out, m.rows[row])
	return out, nil
}

// Dense returns a row-major copy of the whole matrix.
func (m *Matrix) Dense() [][]float32 {
	out := make([][]float32, len(m.rows))
	for i, row := range m.rows {
		out[i] = make([]float32, m.cols)
		copy(out[i], row)
	}
	return out
}

// FromDense builds a matrix from a row-major table. Every row must have
// exactly cols cells and the table must have exactly rows rows.
func FromDense(data [][]float32, rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("negative dimensions %dx%d", rows, cols)
	}
	if len(data) != rows {
		return nil, fmt.Errorf("row count mismatch: table has %d rows, expected %d", len(data), rows)
	}
	m := &Matrix{cols: cols, rows: make([][]float32, rows)}
	for i, row := range data {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), cols)
		}
		m.rows[i] = make([]float32, cols)
		copy(m.rows[i], row)
	}
	return m, nil
}

func (m *Matrix) check(row, col int) error {
	if row < 0 || row >= len(m.rows) {
		return fmt.Errorf("row %d out of range [0,%d)", row, len(m.rows))
	}
	if col < 0 || col >= m.cols {
		return fmt.Errorf("col %d out of range [0,%d)", col, m.cols)
	}
	return nil
}
