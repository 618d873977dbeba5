package health

// StoreReader reports on the loaded document store.
type StoreReader interface {
	Len() int
	Skipped() int
}
