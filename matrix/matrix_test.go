package matrix

import (
	"reflect"
	"testing"
)

func TestGrowth(t *testing.T) {
	m := New()
	if m.Rows() != 0 || m.Cols() != 0 {
		t.Fatalf("new matrix should be 0x0, got %dx%d", m.Rows(), m.Cols())
	}
	if got := m.AddRow(); got != 0 {
		t.Errorf("first row index = %d", got)
	}
	if got := m.AddColumn(); got != 0 {
		t.Errorf("first col index = %d", got)
	}
	if got := m.AddColumn(); got != 1 {
		t.Errorf("second col index = %d", got)
	}
	if m.Rows() != 1 || m.Cols() != 2 {
		t.Errorf("got %dx%d, want 1x2", m.Rows(), m.Cols())
	}
}

func TestGrowthPreservesCells(t *testing.T) {
	m := New()
	m.AddRow()
	m.AddColumn()
	if err := m.Set(0, 0, 3.5); err != nil {
		t.Fatal(err)
	}
	m.AddRow()
	m.AddColumn()
	got, err := m.At(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3.5 {
		t.Errorf("cell moved or changed after growth: got %f", got)
	}
	// New row and column start zeroed.
	if v, _ := m.At(1, 0); v != 0 {
		t.Errorf("new row cell = %f", v)
	}
	if v, _ := m.At(0, 1); v != 0 {
		t.Errorf("new col cell = %f", v)
	}
}

func TestAdd(t *testing.T) {
	m := New()
	m.AddRow()
	m.AddColumn()
	if err := m.Add(0, 0, 2); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.At(0, 0); v != 3 {
		t.Errorf("got %f, want 3", v)
	}
}

func TestOutOfRange(t *testing.T) {
	m := New()
	m.AddRow()
	m.AddColumn()
	if _, err := m.At(1, 0); err == nil {
		t.Error("expected row range error")
	}
	if _, err := m.At(0, 1); err == nil {
		t.Error("expected col range error")
	}
	if err := m.Set(-1, 0, 1); err == nil {
		t.Error("expected negative row error")
	}
	if _, err := m.Row(5); err == nil {
		t.Error("expected row error")
	}
}

func TestRowReturnsCopy(t *testing.T) {
	m := New()
	m.AddRow()
	m.AddColumn()
	m.Set(0, 0, 1)
	row, err := m.Row(0)
	if err != nil {
		t.Fatal(err)
	}
	row[0] = 99
	if v, _ := m.At(0, 0); v != 1 {
		t.Error("Row should return a copy")
	}
}

func TestDenseFromDenseRoundTrip(t *testing.T) {
	m := New()
	m.AddRow()
	m.AddRow()
	m.AddColumn()
	m.AddColumn()
	m.AddColumn()
	m.Set(0, 1, 1.5)
	m.Set(1, 2, 2.5)

	dense := m.Dense()
	got, err := FromDense(dense, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Dense(), dense) {
		t.Error("round trip mismatch")
	}
}

func TestFromDense_validation(t *testing.T) {
	if _, err := FromDense([][]float32{{1}}, 2, 1); err == nil {
		t.Error("expected row count error")
	}
	if _, err := FromDense([][]float32{{1, 2}, {3}}, 2, 2); err == nil {
		t.Error("expected ragged row error")
	}
	if _, err := FromDense(nil, -1, 0); err == nil {
		t.Error("expected negative dimension error")
	}
	m, err := FromDense([][]float32{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows() != 0 || m.Cols() != 0 {
		t.Errorf("got %dx%d", m.Rows(), m.Cols())
	}
}
