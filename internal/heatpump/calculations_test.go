package heatpump

import "testing"

func TestCalculationsParseAndGet(t *testing.T) {
	c := NewCalculations()
	raw := make([]int32, 18)
	raw[10] = 352  // flow temperature, tenths of °C
	raw[15] = -45  // outside temperature
	raw[17] = 512  // hot water
	c.Parse(raw)

	v, ok := c.Get(10)
	if !ok {
		t.Fatal("Get(10) not found")
	}
	if v.Name != "ID_WEB_Temperatur_TVL" {
		t.Errorf("Get(10).Name = %q, want ID_WEB_Temperatur_TVL", v.Name)
	}
	if v.Scaled != 35.2 {
		t.Errorf("Get(10).Scaled = %v, want 35.2", v.Scaled)
	}

	v, _ = c.Get(15)
	if v.Scaled != -4.5 {
		t.Errorf("outside temperature = %v, want -4.5", v.Scaled)
	}

	if _, ok := c.Get(100); ok {
		t.Error("Get(100) should report missing")
	}
}

func TestCalculationsParseCopiesInput(t *testing.T) {
	c := NewCalculations()
	raw := []int32{1, 2, 3}
	c.Parse(raw)
	raw[0] = 99

	v, _ := c.Get(0)
	if v.Raw != 1 {
		t.Errorf("Get(0).Raw = %d, want 1 (Parse must copy)", v.Raw)
	}
}

func TestVisibilities(t *testing.T) {
	v := NewVisibilities()
	v.Parse([]int8{1, 0, 1})

	if !v.Visible(0) || v.Visible(1) || !v.Visible(2) {
		t.Errorf("Visible flags wrong for %v", []int8{1, 0, 1})
	}
	if v.Visible(3) || v.Visible(-1) {
		t.Error("out-of-range index should not be visible")
	}
	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3", v.Len())
	}
}
