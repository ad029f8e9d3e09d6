package uv

// SetUVBinary overrides the resolution tool binary for tests and returns a
// restore function.
func SetUVBinary(name string) func() {
	prev := uvBinary
	uvBinary = name
	return func() { uvBinary = prev }
}
