package main

import (
	"context"

	dombanner "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/banner"
)

// noopBanners stands in for the banner store when no cache is configured.
type noopBanners struct{}

func (noopBanners) Put(_ context.Context, _ string, _ dombanner.Banner) error { return nil }

func (noopBanners) Get(_ context.Context, _ string) (*dombanner.Banner, error) { return nil, nil }

func (noopBanners) Delete(_ context.Context, _ string) error { return nil }
