// Package pick tracks coordinate labels toggled by picking points on a
// rendered mesh. Labels are owned by a Session, created when the
// interactive view starts and closed when it ends.
package pick

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPoint is returned for a picked point with a NaN coordinate,
// which could never be matched again to remove its label
var ErrInvalidPoint = errors.New("picked point has a NaN coordinate")

// LabelHandle identifies a label created by a LabelPlotter
type LabelHandle any

// LabelPlotter is the rendering collaborator that draws and removes labels
type LabelPlotter interface {
	AddPointLabel(point [3]float64, text string) (LabelHandle, error)
	RemoveLabel(h LabelHandle) error
}

// Session maps picked points to the labels shown for them
type Session struct {
	plotter LabelPlotter
	labels  map[[3]float64]LabelHandle
}

func NewSession(plotter LabelPlotter) *Session {
	return &Session{
		plotter: plotter,
		labels:  make(map[[3]float64]LabelHandle),
	}
}

// LabelText formats the coordinates shown next to a picked point
func LabelText(point [3]float64) string {
	return fmt.Sprintf("%.1f, %.1f, %.1f", point[0], point[1], point[2])
}

// Toggle removes the label at point if one exists, otherwise adds one.
// added reports which happened.
func (s *Session) Toggle(point [3]float64) (added bool, err error) {
	for _, x := range point {
		if math.IsNaN(x) {
			return false, fmt.Errorf("%w: %v", ErrInvalidPoint, point)
		}
	}
	if h, ok := s.labels[point]; ok {
		if err = s.plotter.RemoveLabel(h); err != nil {
			return false, fmt.Errorf("removing label at %v: %w", point, err)
		}
		delete(s.labels, point)
		return false, nil
	}
	h, err := s.plotter.AddPointLabel(point, LabelText(point))
	if err != nil {
		return false, fmt.Errorf("adding label at %v: %w", point, err)
	}
	s.labels[point] = h
	return true, nil
}

// Labeled reports whether point currently has a label
func (s *Session) Labeled(point [3]float64) bool {
	_, ok := s.labels[point]
	return ok
}

func (s *Session) Len() int { return len(s.labels) }

// Close removes every label still shown. Labels that fail to be removed
// stay in the session and their errors are joined.
func (s *Session) Close() error {
	var errs []error
	for point, h := range s.labels {
		if err := s.plotter.RemoveLabel(h); err != nil {
			errs = append(errs, fmt.Errorf("removing label at %v: %w", point, err))
			continue
		}
		delete(s.labels, point)
	}
	return errors.Join(errs...)
}
