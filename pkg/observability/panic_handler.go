package observability

import (
	"fmt"
	"runtime/debug"
)

// RecoverPanic logs a recovered panic with its stack and swallows it. It
// only works when deferred directly:
//
//	defer observability.RecoverPanic(logger, "watch loop")
func RecoverPanic(logger *Logger, where string) {
	r := recover()
	if r == nil {
		return
	}
	logger.WithFields(map[string]interface{}{
		"panic": fmt.Sprint(r),
		"where": where,
		"stack": string(debug.Stack()),
	}).Error("panic recovered")
}

// PanicError converts a recovered value to an error; nil stays nil.
func PanicError(r interface{}) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
