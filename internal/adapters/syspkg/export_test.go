package syspkg

// SetAptGet overrides the package manager binary for tests and returns a
// restore function.
func SetAptGet(name string) func() {
	prev := aptGet
	aptGet = name
	return func() { aptGet = prev }
}
