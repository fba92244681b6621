// Package history keeps bounded in-memory sample series for dashboard
// charts. Series are rebuilt from live data on every refresh and are not
// persisted.
package history

// DefaultCapacity is the number of samples a Series retains when created
// with capacity 0.
const DefaultCapacity = 100

// Series is a bounded FIFO of samples. Each sample carries one or more
// values (a disk sample holds read and write rates, a load sample a
// single value). When full, pushing evicts the oldest sample.
type Series struct {
	capacity int
	samples  [][]float64
}

// NewSeries creates a Series holding at most capacity samples.
func NewSeries(capacity int) *Series {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Series{capacity: capacity}
}

// Push appends a sample, evicting the oldest when the series is full.
func (s *Series) Push(values ...float64) {
	if len(s.samples) >= s.capacity {
		s.samples = s.samples[1:]
	}
	sample := make([]float64, len(values))
	copy(sample, values)
	s.samples = append(s.samples, sample)
}

// Len returns the number of retained samples.
func (s *Series) Len() int {
	return len(s.samples)
}

// Points returns the samples as rows of [index, values...], with indexes
// reassigned 0..Len()-1 on every call. After an eviction the oldest
// remaining sample is index 0 again.
func (s *Series) Points() [][]float64 {
	points := make([][]float64, len(s.samples))
	for i, sample := range s.samples {
		row := make([]float64, 0, len(sample)+1)
		row = append(row, float64(i))
		row = append(row, sample...)
		points[i] = row
	}
	return points
}

// Column returns the values of one sample column, oldest first. Samples
// too short for the column contribute 0.
func (s *Series) Column(col int) []float64 {
	values := make([]float64, len(s.samples))
	for i, sample := range s.samples {
		if col < len(sample) {
			values[i] = sample[col]
		}
	}
	return values
}

// Last returns the most recent sample, or nil when empty.
func (s *Series) Last() []float64 {
	if len(s.samples) == 0 {
		return nil
	}
	return s.samples[len(s.samples)-1]
}

// Max returns the largest value across all samples and columns, with a
// floor to keep chart axes non-degenerate.
func (s *Series) Max(floor float64) float64 {
	max := floor
	for _, sample := range s.samples {
		for _, v := range sample {
			if v > max {
				max = v
			}
		}
	}
	return max
}
