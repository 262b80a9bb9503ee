package xerrors

// Unwrap splits a joined error back into its parts. A plain error is returned as a single element
// and a nil error as an empty slice.
func Unwrap(err error) []error {
	if err == nil {
		return nil
	}
	u, ok := err.(interface {
		Unwrap() []error
	})
	if !ok {
		return []error{err}
	}
	return u.Unwrap()
}
