package cas

// NewStoreWithPath exports newStoreWithPath for testing purposes.
func NewStoreWithPath(dir string) *Store {
	return newStoreWithPath(dir)
}
