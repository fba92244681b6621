package history

import "testing"

func TestSeriesCapacityEviction(t *testing.T) {
	s := NewSeries(0)
	for i := 0; i < 150; i++ {
		s.Push(float64(i))
	}

	if s.Len() != DefaultCapacity {
		t.Fatalf("Len() = %d, want %d", s.Len(), DefaultCapacity)
	}

	// The 50 oldest samples were evicted.
	col := s.Column(0)
	if col[0] != 50 || col[len(col)-1] != 149 {
		t.Errorf("retained range [%v, %v], want [50, 149]", col[0], col[len(col)-1])
	}
}

func TestSeriesPointsReindex(t *testing.T) {
	s := NewSeries(3)
	s.Push(10)
	s.Push(20)
	s.Push(30)
	s.Push(40) // evicts 10

	points := s.Points()
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for i, point := range points {
		if point[0] != float64(i) {
			t.Errorf("points[%d] index = %v, want %d", i, point[0], i)
		}
	}
	if points[0][1] != 20 || points[2][1] != 40 {
		t.Errorf("points values = %v, want 20..40", points)
	}
}

func TestSeriesMultiValueSamples(t *testing.T) {
	s := NewSeries(10)
	s.Push(1, 100)
	s.Push(2, 200)

	reads := s.Column(0)
	writes := s.Column(1)
	if reads[1] != 2 || writes[1] != 200 {
		t.Errorf("columns = %v / %v, want [1 2] / [100 200]", reads, writes)
	}

	last := s.Last()
	if len(last) != 2 || last[0] != 2 || last[1] != 200 {
		t.Errorf("Last() = %v, want [2 200]", last)
	}
}

func TestSeriesMax(t *testing.T) {
	s := NewSeries(10)
	if got := s.Max(1.0); got != 1.0 {
		t.Errorf("empty Max(1) = %v, want floor", got)
	}

	s.Push(5, 80)
	s.Push(3, 20)
	if got := s.Max(1.0); got != 80 {
		t.Errorf("Max(1) = %v, want 80", got)
	}
}

func TestSeriesLastEmpty(t *testing.T) {
	if got := NewSeries(5).Last(); got != nil {
		t.Errorf("Last() on empty series = %v, want nil", got)
	}
}
