package library

import "github.com/quorail/docshelf/internal/domain/document"

// Store is the read contract over the loaded document snapshot.
type Store interface {
	Names() []string
	Get(name string) (document.Document, error)
}
