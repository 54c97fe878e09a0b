//go:build !debug_capture_state

package utils

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_capture_state build tag is present
func DebugValidate(validatable Validatable) {
}
