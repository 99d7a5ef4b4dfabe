package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/banner"
)

type mockSearchClient struct {
	displayErr error
	clickErr   error

	displayCalls []int
	clickCalls   []int
}

func (m *mockSearchClient) RegisterBannerDisplay(_ context.Context, bannerID int) error {
	m.displayCalls = append(m.displayCalls, bannerID)
	return m.displayErr
}

func (m *mockSearchClient) RegisterBannerClick(_ context.Context, bannerID int) error {
	m.clickCalls = append(m.clickCalls, bannerID)
	return m.clickErr
}

type mockBanners struct {
	banner *banner.Banner
	getErr error

	getCalls    int
	deleteCalls []string
}

func (m *mockBanners) Get(_ context.Context, _ string) (*banner.Banner, error) {
	m.getCalls++
	return m.banner, m.getErr
}

func (m *mockBanners) Delete(_ context.Context, requestID string) error {
	m.deleteCalls = append(m.deleteCalls, requestID)
	return nil
}

func TestRecordImpression(t *testing.T) {
	b := banner.New(42, []byte(`{"image":"sale.png"}`))
	client := &mockSearchClient{}
	banners := &mockBanners{banner: &b}
	svc := New(func() SearchClient { return client }, banners, nil)

	svc.RecordImpression(context.Background(), "req-1")

	if len(client.displayCalls) != 1 || client.displayCalls[0] != 42 {
		t.Fatalf("display calls = %v, want [42]", client.displayCalls)
	}
	if len(banners.deleteCalls) != 1 || banners.deleteCalls[0] != "req-1" {
		t.Errorf("stored banner must be dropped after a successful impression, deletes = %v", banners.deleteCalls)
	}
}

func TestRecordImpression_NoStoredBanner(t *testing.T) {
	client := &mockSearchClient{}
	banners := &mockBanners{banner: nil}
	svc := New(func() SearchClient { return client }, banners, nil)

	svc.RecordImpression(context.Background(), "req-1")

	if len(client.displayCalls) != 0 {
		t.Errorf("no registration without a stored banner, calls = %v", client.displayCalls)
	}
}

func TestRecordImpression_UntrackableBanner(t *testing.T) {
	b := banner.New(0, []byte(`{}`))
	client := &mockSearchClient{}
	banners := &mockBanners{banner: &b}
	svc := New(func() SearchClient { return client }, banners, nil)

	svc.RecordImpression(context.Background(), "req-1")

	if len(client.displayCalls) != 0 {
		t.Errorf("a banner without an identifier must not be registered, calls = %v", client.displayCalls)
	}
}

func TestRecordImpression_RegistrationFailureKeepsBanner(t *testing.T) {
	b := banner.New(7, nil)
	client := &mockSearchClient{displayErr: errors.New("api down")}
	banners := &mockBanners{banner: &b}
	svc := New(func() SearchClient { return client }, banners, nil)

	// Must not panic or surface the error.
	svc.RecordImpression(context.Background(), "req-1")

	if len(banners.deleteCalls) != 0 {
		t.Error("banner must stay stored when registration fails")
	}
}

func TestRecordImpression_StoreReadFailureSwallowed(t *testing.T) {
	client := &mockSearchClient{}
	banners := &mockBanners{getErr: errors.New("cache down")}
	svc := New(func() SearchClient { return client }, banners, nil)

	svc.RecordImpression(context.Background(), "req-1")

	if len(client.displayCalls) != 0 {
		t.Errorf("registration must be skipped on a store read failure, calls = %v", client.displayCalls)
	}
}

func TestRecordClick(t *testing.T) {
	client := &mockSearchClient{}
	svc := New(func() SearchClient { return client }, &mockBanners{}, nil)

	svc.RecordClick(context.Background(), 42)

	if len(client.clickCalls) != 1 || client.clickCalls[0] != 42 {
		t.Fatalf("click calls = %v, want [42]", client.clickCalls)
	}
}

func TestRecordClick_IgnoresInvalidID(t *testing.T) {
	client := &mockSearchClient{}
	svc := New(func() SearchClient { return client }, &mockBanners{}, nil)

	svc.RecordClick(context.Background(), 0)
	svc.RecordClick(context.Background(), -3)

	if len(client.clickCalls) != 0 {
		t.Errorf("non-positive banner ids must be ignored, calls = %v", client.clickCalls)
	}
}

func TestClientBuiltLazilyAndReused(t *testing.T) {
	client := &mockSearchClient{}
	factoryCalls := 0
	svc := New(func() SearchClient {
		factoryCalls++
		return client
	}, &mockBanners{}, nil)

	if factoryCalls != 0 {
		t.Fatal("client must not be constructed before first use")
	}

	// A click can be the first hosted API interaction in the process.
	svc.RecordClick(context.Background(), 1)
	svc.RecordClick(context.Background(), 2)

	if factoryCalls != 1 {
		t.Errorf("client factory called %d times, want 1", factoryCalls)
	}
}
