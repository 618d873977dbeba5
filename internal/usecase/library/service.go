// Package library exposes the read-only query operations over the
// document store: list, whole document, section list, the two derived
// views, and single-section lookup. Every operation is a pure read of
// the immutable snapshot.
package library

import (
	"context"
	"fmt"

	"github.com/quorail/docshelf/internal/domain"
	"github.com/quorail/docshelf/internal/domain/document"
)

// Service answers document queries.
type Service struct {
	store Store
}

// New creates a library service.
func New(store Store) *Service {
	return &Service{store: store}
}

// List returns all document names in sorted order.
func (s *Service) List(_ context.Context) []string {
	return s.store.Names()
}

// Get returns a full document by name.
func (s *Service) Get(_ context.Context, name string) (document.Document, error) {
	doc, err := s.store.Get(name)
	if err != nil {
		return document.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Sections returns a document's section names, virtual sections included.
func (s *Service) Sections(_ context.Context, name string) ([]string, error) {
	doc, err := s.store.Get(name)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc.SectionNames(), nil
}

// Metadata returns the six-field identity projection of a document.
func (s *Service) Metadata(_ context.Context, name string) (document.Metadata, error) {
	doc, err := s.store.Get(name)
	if err != nil {
		return document.Metadata{}, fmt.Errorf("get document: %w", err)
	}
	m, err := doc.Metadata()
	if err != nil {
		return document.Metadata{}, fmt.Errorf("document %q: %w", name, err)
	}
	return m, nil
}

// DocumentControl returns the revision/approval projection of a document.
func (s *Service) DocumentControl(_ context.Context, name string) (document.DocumentControl, error) {
	doc, err := s.store.Get(name)
	if err != nil {
		return document.DocumentControl{}, fmt.Errorf("get document: %w", err)
	}
	return doc.DocumentControl(), nil
}

// Section returns the raw value of one top-level section.
func (s *Service) Section(_ context.Context, name, section string) (document.Value, error) {
	doc, err := s.store.Get(name)
	if err != nil {
		return document.Value{}, fmt.Errorf("get document: %w", err)
	}
	v, ok := doc.Section(section)
	if !ok {
		return document.Value{}, fmt.Errorf("section %q of %q: %w", section, name, domain.ErrSectionNotFound)
	}
	return v, nil
}
