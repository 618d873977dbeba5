package health

import "testing"

type mockStore struct {
	length  int
	skipped int
}

func (m *mockStore) Len() int     { return m.length }
func (m *mockStore) Skipped() int { return m.skipped }

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockStore{length: 3, skipped: 1})

	report := svc.Check()
	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if report.Documents != 3 {
		t.Errorf("documents = %d, want 3", report.Documents)
	}
	if report.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", report.Skipped)
	}
}

func TestCheck_EmptyStoreIsDegraded(t *testing.T) {
	svc := New(&mockStore{length: 0, skipped: 2})

	report := svc.Check()
	if report.Status != Degraded {
		t.Errorf("status = %q, want %q", report.Status, Degraded)
	}
}
