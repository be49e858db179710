package handler

// SetMarshal replaces the JSON encoder and returns a function restoring it.
func SetMarshal(fn func(any) ([]byte, error)) (restore func()) {
	prev := marshal
	marshal = fn
	return func() { marshal = prev }
}
