// Package clipboard writes palette text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"log"
)

// ErrUnavailable is returned when the clipboard cannot be written.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer is anything that can set the clipboard contents. *glfw.Window
// satisfies it.
type Writer interface {
	SetClipboardString(text string)
}

// Write sets the clipboard to text. GLFW reports platform errors by
// panicking; those are turned into ErrUnavailable.
func Write(w Writer, text string) (err error) {
	if w == nil {
		return ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnavailable, r)
		}
	}()
	w.SetClipboardString(text)
	return nil
}

// Copy is Write for callers that only need to know whether it worked.
// Failures are logged.
func Copy(w Writer, text string) bool {
	if err := Write(w, text); err != nil {
		log.Printf("copy failed: %v", err)
		return false
	}
	return true
}
