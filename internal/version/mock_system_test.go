package version

// testSystem provides a mock System for unit tests. Unset funcs fall back to RealSystem so
// tests can use t.TempDir fixtures without mocking every read.
type testSystem struct {
	RealSystem

	ReadFileFunc func(name string) ([]byte, error)
}

func (s *testSystem) ReadFile(name string) ([]byte, error) {
	if s.ReadFileFunc != nil {
		return s.ReadFileFunc(name)
	}
	return s.RealSystem.ReadFile(name)
}
