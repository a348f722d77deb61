package geometry

import "testing"

func TestRectIntIn(t *testing.T) {
	bounds := NewRectInt(0, 0, 100, 50)

	cases := []struct {
		r    RectInt
		want bool
	}{
		{NewRectInt(0, 0, 100, 50), true},
		{NewRectInt(10, 10, 20, 20), true},
		{NewRectInt(90, 40, 10, 10), true},
		{NewRectInt(95, 40, 10, 10), false},
		{NewRectInt(-1, 0, 10, 10), false},
		{NewRectInt(0, 45, 10, 10), false},
	}
	for _, c := range cases {
		if got := c.r.In(bounds); got != c.want {
			t.Errorf("%+v.In(bounds) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestRectIntAccessors(t *testing.T) {
	r := NewRectInt(5, 10, 20, 30)
	if r.Right() != 25 || r.Bottom() != 40 {
		t.Errorf("Right/Bottom = %d/%d", r.Right(), r.Bottom())
	}
	if r.Area() != 600 {
		t.Errorf("Area = %d", r.Area())
	}
	if r.Empty() {
		t.Error("non-empty rect reported empty")
	}
	if !(RectInt{Width: 0, Height: 5}).Empty() {
		t.Error("zero-width rect not reported empty")
	}
	if got := r.Offset(1, -2); got != NewRectInt(6, 8, 20, 30) {
		t.Errorf("Offset = %+v", got)
	}
	if r.TopLeft() != (PointInt{X: 5, Y: 10}) {
		t.Errorf("TopLeft = %+v", r.TopLeft())
	}
}
