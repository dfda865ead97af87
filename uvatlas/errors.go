// Package uvatlas is the public entry point for the atlas pipeline:
// it wires mesh repair, iso-chart partitioning and packing together
// behind CreateAtlas, and exposes ApplyRemap for pushing an existing
// per-vertex attribute through the vertex duplication CreateAtlas
// performs at chart seams.
package uvatlas

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the outcome of a CreateAtlas or ApplyRemap call. The zero
// value, OK, is never attached to an error - callers that get a nil
// error may assume OK.
type Status int

const (
	// OK means the call completed and produced a usable atlas.
	OK Status = iota

	// InvalidArgument means the caller's input failed validation before
	// any work began: mismatched slice lengths, an out-of-range index,
	// a non-positive atlas dimension.
	InvalidArgument

	// InvalidTopology means the mesh itself can't be processed: a
	// non-manifold edge Repair couldn't resolve, or a component with no
	// faces left after degenerate-face removal.
	InvalidTopology

	// NonSplittableBlocked means a requested chart count could not be
	// reached because doing so would require cutting an edge the
	// caller marked non-splittable.
	NonSplittableBlocked

	// OutOfMemory means an allocation needed to proceed could not be
	// made. The pipeline itself never simulates this; it's reserved for
	// a future allocation-budget check.
	OutOfMemory

	// Canceled means the caller's progress callback returned Canceled.
	Canceled

	// NumericFailure means an internal invariant was violated - a
	// singular linear solve, a cut that left a face unlabeled, a
	// parameterizer handed a chart it can't lay out - and was caught by
	// CreateAtlas's panic recovery rather than propagated as a typed
	// error from deeper in the pipeline.
	NumericFailure
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidTopology:
		return "InvalidTopology"
	case NonSplittableBlocked:
		return "NonSplittableBlocked"
	case OutOfMemory:
		return "OutOfMemory"
	case Canceled:
		return "Canceled"
	case NumericFailure:
		return "NumericFailure"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Error is the concrete error type every non-OK CreateAtlas/ApplyRemap
// return uses. It carries the Status a caller should switch on plus a
// human-readable message and, when the failure originated from a
// wrapped call into mesh/isochart/packer, the underlying cause.
type Error struct {
	Status  Status
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("uvatlas: %s: %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("uvatlas: %s: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrInvalidTopology) match any *Error sharing
// that sentinel's Status, not just the sentinel value itself.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Status == e.Status
}

func newError(status Status, cause error, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Sentinel Status values, one per non-OK Status, so callers can write
// errors.Is(err, uvatlas.ErrCanceled) the way lvlath/flow callers write
// errors.Is(err, flow.ErrSourceNotFound) against a fixed set of named
// failure cases rather than comparing strings or switching on Status
// directly.
var (
	ErrInvalidArgument    = &Error{Status: InvalidArgument, Message: "invalid argument"}
	ErrInvalidTopology    = &Error{Status: InvalidTopology, Message: "invalid topology"}
	ErrNonSplittableBlock = &Error{Status: NonSplittableBlocked, Message: "non-splittable edge blocks requested chart count"}
	ErrOutOfMemory        = &Error{Status: OutOfMemory, Message: "out of memory"}
	ErrCanceled           = &Error{Status: Canceled, Message: "canceled by callback"}
	ErrNumericFailure     = &Error{Status: NumericFailure, Message: "numeric failure"}
)

// recoverToError turns a panic raised anywhere under CreateAtlas into a
// NumericFailure (or InvalidTopology, for the specific invariant panics
// the mesh package documents as topology violations) *Error, following
// unixpickle/model3d's own practice of panicking on programmer-error-
// shaped invariant violations (an unbuilt mesh passed to a method that
// requires Build, an edge pair that isn't a face's edge) rather than
// threading an error return through every helper. CreateAtlas is the
// one place those panics are supposed to stop: deeper layers panic,
// the boundary recovers.
func recoverToError(errOut *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok && errors.As(err, new(*Error)) {
		*errOut = err
		return
	}
	status := NumericFailure
	if msg, ok := r.(string); ok && looksLikeTopologyPanic(msg) {
		status = InvalidTopology
	}
	*errOut = newError(status, fmt.Errorf("%v", r), "recovered from internal panic")
}

func looksLikeTopologyPanic(msg string) bool {
	lower := strings.ToLower(msg)
	for _, needle := range []string{"manifold", "build must run", "not an edge of the face", "bowtie"} {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}
