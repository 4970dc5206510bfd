package models

import (
	"testing"
)

// TestImageFromRows verifies row copying and ragged input rejection
func TestImageFromRows(t *testing.T) {
	img, err := ImageFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("Failed to build image: %v", err)
	}
	if img.Rows != 2 || img.Cols != 3 {
		t.Fatalf("Expected 2x3 image, got %dx%d", img.Rows, img.Cols)
	}
	if img.At(1, 2) != 6 || img.At(0, 1) != 2 {
		t.Errorf("Unexpected values: %v", img.Data)
	}

	if _, err := ImageFromRows([][]float64{{1, 2}, {3}}); err == nil {
		t.Errorf("Expected error for ragged rows")
	}
	if _, err := ImageFromRows(nil); err == nil {
		t.Errorf("Expected error for empty input")
	}
}

// TestImageRowColumn checks that Row aliases the data and Column copies it
func TestImageRowColumn(t *testing.T) {
	img := NewImage(3, 2)
	img.Set(2, 1, 7)

	row := img.Row(2)
	row[0] = 5
	if img.At(2, 0) != 5 {
		t.Errorf("Expected Row to alias image data")
	}

	col := img.Column(1)
	if len(col) != 3 || col[2] != 7 {
		t.Errorf("Expected column [0 0 7], got %v", col)
	}
	col[2] = 1
	if img.At(2, 1) != 7 {
		t.Errorf("Expected Column to return a copy")
	}
}

// TestImageValidate checks dimension and length consistency
func TestImageValidate(t *testing.T) {
	if err := NewImage(2, 2).Validate(); err != nil {
		t.Errorf("Expected valid image, got %v", err)
	}
	bad := []*Image{
		nil,
		{Rows: 0, Cols: 2},
		{Rows: 2, Cols: 2, Data: make([]float64, 3)},
	}
	for _, img := range bad {
		if err := img.Validate(); err == nil {
			t.Errorf("Expected error for %+v", img)
		}
	}
	if !NewImage(2, 3).SameShape(NewImage(2, 3)) || NewImage(2, 3).SameShape(NewImage(3, 2)) {
		t.Errorf("SameShape gave the wrong answer")
	}
}
