package backend

import (
	"cmp"
	"slices"
	"sync"

	"git.sr.ht/~whereswaldon/curvechart/chart"
)

// Series holds the samples of one CSV column ordered by x.
type Series struct {
	lock                 sync.RWMutex
	heading              Heading
	points               []chart.Point
	domainMin, domainMax float64
	rangeMin, rangeMax   float64
	initialized          bool
}

func NewSeries(heading Heading) *Series {
	return &Series{heading: heading}
}

func (s *Series) Heading() Heading {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.heading
}

func (s *Series) Name() string {
	return s.Heading().Name
}

func (s *Series) Initialized() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.initialized
}

// Domain reports the x extent of the series.
func (s *Series) Domain() (min, max float64) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.domainMin, s.domainMax
}

// RangeY reports the y extent of the series.
func (s *Series) RangeY() (min, max float64) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.rangeMin, s.rangeMax
}

func (s *Series) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.points)
}

// Insert adds a sample to the series. In the event that the series already
// contains a sample at that x, nothing is added and the method returns false.
// Otherwise, the method returns true.
func (s *Series) Insert(p chart.Point) (inserted bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	index, found := slices.BinarySearchFunc(s.points, p.X, func(e chart.Point, x float64) int {
		return cmp.Compare(e.X, x)
	})
	if found {
		return false
	}
	if !s.initialized {
		s.domainMin, s.domainMax = p.X, p.X
		s.rangeMin, s.rangeMax = p.Y, p.Y
		s.initialized = true
	}
	s.points = slices.Insert(s.points, index, p)
	s.domainMin = min(s.domainMin, p.X)
	s.domainMax = max(s.domainMax, p.X)
	s.rangeMin = min(s.rangeMin, p.Y)
	s.rangeMax = max(s.rangeMax, p.Y)
	return true
}

// Points returns a copy of the samples in x order.
func (s *Series) Points() []chart.Point {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.points)
}
