package date

import (
	"testing"
	"time"
)

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// appending two values in reverse order must keep the history sorted.
	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("history days = %v want [%v %v]", h.days, d2, d1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("history values = %v want [%v %v]", h.values, v2, v1)
	}

	h.Append(d1, "overwritten")
	if h.Len() != 2 {
		t.Errorf("Append(d1, ...).Len() = %v want 2", h.Len())
	}
	if v, ok := h.Get(d1); !ok || v != "overwritten" {
		t.Errorf("Get(d1) = %q, %v want %q, true", v, ok, "overwritten")
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2024, time.January, 1), 100)
	h.Append(New(2024, time.March, 1), 120)
	h.Append(New(2024, time.February, 1), 110)

	testCases := []struct {
		on     Date
		want   float64
		wantOk bool
	}{
		{New(2023, time.December, 31), 0, false},
		{New(2024, time.January, 1), 100, true},
		{New(2024, time.January, 31), 100, true},
		{New(2024, time.February, 29), 110, true},
		{New(2024, time.March, 1), 120, true},
		{New(2030, time.March, 1), 120, true},
	}
	for _, tc := range testCases {
		got, ok := h.ValueAsOf(tc.on)
		if ok != tc.wantOk || got != tc.want {
			t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.on, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestGet(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2024, time.January, 1), 100)
	if v, ok := h.Get(New(2024, time.January, 1)); !ok || v != 100 {
		t.Errorf("Get() = %v, %v want 100, true", v, ok)
	}
	if _, ok := h.Get(New(2024, time.January, 2)); ok {
		t.Errorf("Get() on a missing day should not be found")
	}
	n := 0
	for range h.Values() {
		n++
	}
	if n != 1 {
		t.Errorf("Values() yielded %d values want 1", n)
	}
}
