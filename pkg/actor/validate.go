package actor

import (
	"fmt"
	"math"

	"github.com/chazu/drafter/pkg/shape"
	"github.com/samber/lo"
)

// Severity indicates whether a finding breaks an invariant or is merely
// suspicious.
type Severity int

const (
	SeverityError   Severity = iota // invariant broken
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ModelID  string   // which model has the problem (empty if collection-level)
	Message  string   // human-readable description
	Severity Severity // error or warning
}

func (e ValidationError) Error() string {
	if e.ModelID == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] model %s: %s", e.Severity, shortID(e.ModelID), e.Message)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Validate checks the invariants linking a Drawables collection to its
// grab dispatcher. An empty slice means the collections are consistent.
// It never mutates either collection.
func Validate(d *Drawables) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateOrder(d)...)
	errs = append(errs, validateRegistration(d)...)
	errs = append(errs, validateGrab(d)...)
	errs = append(errs, validateOrphans(d)...)
	return errs
}

// validateOrder checks that zOrders are exactly 0..n-1 in draw order and
// that no representation appears twice.
func validateOrder(d *Drawables) []ValidationError {
	var errs []ValidationError

	if dups := lo.FindDuplicates(d.items); len(dups) > 0 {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("%d representations registered more than once", len(dups)),
			Severity: SeverityError,
		})
	}

	for i, r := range d.items {
		if z := r.Model().ZOrder(); z != float64(i) {
			errs = append(errs, ValidationError{
				ModelID:  r.Model().ID(),
				Message:  fmt.Sprintf("zOrder %g at draw position %d", z, i),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateRegistration checks that every drawn model and each of its nodes
// is grabbable, that handles sit just above their model and that nodes
// point back at their model.
func validateRegistration(d *Drawables) []ValidationError {
	var errs []ValidationError

	for _, r := range d.items {
		m := r.Model()
		if !d.movables.contains(m) {
			errs = append(errs, ValidationError{
				ModelID:  m.ID(),
				Message:  "model is not registered for grabbing",
				Severity: SeverityError,
			})
		}
		for i, n := range m.Nodes() {
			if !d.movables.contains(n) {
				errs = append(errs, ValidationError{
					ModelID:  m.ID(),
					Message:  fmt.Sprintf("node %d is not registered for grabbing", i),
					Severity: SeverityError,
				})
			}
			if math.Abs(n.ZOrder()-(m.ZOrder()+shape.HandleLift)) > 1e-9 {
				errs = append(errs, ValidationError{
					ModelID:  m.ID(),
					Message:  fmt.Sprintf("node %d zOrder %g, want %g", i, n.ZOrder(), m.ZOrder()+shape.HandleLift),
					Severity: SeverityError,
				})
			}
			if n.Parent() != shape.Movable(m) {
				errs = append(errs, ValidationError{
					ModelID:  m.ID(),
					Message:  fmt.Sprintf("node %d does not point back at its model", i),
					Severity: SeverityWarning,
				})
			}
		}
	}
	return errs
}

// validateGrab checks that at most one primitive is grabbed.
func validateGrab(d *Drawables) []ValidationError {
	grabbed := lo.CountBy(d.movables.items, func(mv shape.Movable) bool { return mv.IsGrabbed() })
	if grabbed <= 1 {
		return nil
	}
	return []ValidationError{{
		Message:  fmt.Sprintf("%d primitives grabbed at once", grabbed),
		Severity: SeverityError,
	}}
}

// validateOrphans warns about grabbable primitives that belong to no drawn
// representation.
func validateOrphans(d *Drawables) []ValidationError {
	owned := make(map[shape.Movable]bool)
	for _, r := range d.items {
		m := r.Model()
		owned[m] = true
		for _, n := range m.Nodes() {
			owned[n] = true
		}
	}

	var errs []ValidationError
	for _, mv := range d.movables.items {
		if owned[mv] {
			continue
		}
		msg := "grabbable node belongs to no drawn shape (orphan)"
		id := ""
		if m, ok := mv.(shape.Model); ok {
			msg = "grabbable model is not drawn (orphan)"
			id = m.ID()
		}
		errs = append(errs, ValidationError{
			ModelID:  id,
			Message:  msg,
			Severity: SeverityWarning,
		})
	}
	return errs
}
