package slice

// MapErr applies f to every element, stopping at the first error.
func MapErr[T, R any](slice []T, f func(T) (R, error)) ([]R, error) {
	out := make([]R, len(slice))
	for i, v := range slice {
		r, err := f(v)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// Map applies f to every element.
func Map[T, R any](slice []T, f func(T) R) []R {
	out := make([]R, len(slice))
	for i, v := range slice {
		out[i] = f(v)
	}
	return out
}
