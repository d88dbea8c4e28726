package nav

import (
	"errors"
	"fmt"
)

// InvalidSectionError reports a navigation request naming a section ID
// that is not in the registry. The viewport is left unchanged.
type InvalidSectionError struct {
	ID string
}

func (e *InvalidSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.ID)
}

// errGestureConflict marks a gesture that began on an interactive element.
// It never escapes the classifier; the gesture is simply suppressed.
var errGestureConflict = errors.New("gesture started on interactive element")
