package domain

import "testing"

func TestRound2HalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{1.004, 1.0},
		{2.675, 2.68},
		{100, 100},
		{-1.005, -1.01},
		{0.125, 0.13},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRound2PtrNil(t *testing.T) {
	if Round2Ptr(nil) != nil {
		t.Error("Round2Ptr(nil) should be nil")
	}
	v := 3.14159
	got := Round2Ptr(&v)
	if got == nil || *got != 3.14 {
		t.Errorf("Round2Ptr(3.14159) = %v, want 3.14", got)
	}
}

func TestCoalesce(t *testing.T) {
	a, b := 1.0, 2.0

	if got := Coalesce(&a, &b); got != &a {
		t.Errorf("Coalesce should return first non-nil, got %v", got)
	}
	if got := Coalesce(nil, &b); got != &b {
		t.Errorf("Coalesce should skip nil, got %v", got)
	}
	if got := Coalesce[float64](nil, nil); got != nil {
		t.Errorf("Coalesce of all nil = %v, want nil", got)
	}
}

func TestHoldingInvestment(t *testing.T) {
	h := Holding{PurchasePrice: 150.5, Quantity: 10}
	if got := h.Investment(); got != 1505 {
		t.Errorf("Investment = %v, want 1505", got)
	}
}
