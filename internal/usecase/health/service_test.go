package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if report.Checks["catalog"] != CheckOK || report.Checks["cache"] != CheckOK {
		t.Errorf("checks = %v", report.Checks)
	}
}

func TestCheck_CatalogDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %q, want %q", report.Status, Degraded)
	}
	if report.Checks["catalog"] != CheckError {
		t.Errorf("catalog check = %q, want %q", report.Checks["catalog"], CheckError)
	}
}

func TestCheck_NoCache(t *testing.T) {
	svc := New(&mockPinger{}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if _, ok := report.Checks["cache"]; ok {
		t.Error("no cache check expected when the cache is absent")
	}
}
