// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/firstsun-go/internal/model"
)

func TestRobotsBuilderBuildDefault(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{SiteURL: "https://firstsun.example/"}).Build()

	if !strings.HasPrefix(content, "User-agent: *\n") {
		t.Errorf("Build() should start with the user-agent line, got %q", content)
	}
	for _, path := range []string{"/dashboard", "/auth", "/api/v1/dashboard/", "/functions/"} {
		if !strings.Contains(content, "Disallow: "+path+"\n") {
			t.Errorf("Build() should disallow %q", path)
		}
	}
	if !strings.Contains(content, "Allow: /\n") {
		t.Error("Build() should allow the public site")
	}
	if !strings.HasSuffix(content, "Sitemap: https://firstsun.example/sitemap.xml\n") {
		t.Errorf("Build() should end with the sitemap reference, got %q", content)
	}
}

func TestRobotsBuilderDisallowAll(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{SiteURL: "https://staging.firstsun.example", DisallowAll: true}).Build()

	if content != "User-agent: *\nDisallow: /\n" {
		t.Errorf("Build() = %q", content)
	}
}

func TestRobotsBuilderExtraPaths(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{DisallowPaths: []string{"/drafts"}}).Build()

	if !strings.Contains(content, "Disallow: /drafts\n") {
		t.Error("Build() should include extra paths")
	}
	if strings.Contains(content, "Sitemap:") {
		t.Error("Build() should omit the sitemap without a site URL")
	}
}

func TestSitemapBuilder(t *testing.T) {
	updated := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	articles := []model.Article{
		{ID: "a1", Slug: "new-solar-farm", Published: true, UpdatedAt: updated},
		{ID: "a2", Published: true, UpdatedAt: updated.Add(-time.Hour)},
		{ID: "a3", Slug: "draft", Published: false, UpdatedAt: updated.Add(time.Hour)},
	}

	b := NewSitemapBuilder("https://firstsun.example/")
	b.AddStaticPages(LatestUpdate(articles))
	b.AddArticles(articles)

	if b.Len() != 5 {
		t.Fatalf("Len() = %d, want 5 (3 pages, 2 published articles)", b.Len())
	}

	data, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, xml.Header) {
		t.Error("Build() should start with the XML header")
	}
	for _, want := range []string{
		`xmlns="` + XMLNamespace + `"`,
		`xmlns:xhtml="` + XHTMLNamespace + `"`,
		"<loc>https://firstsun.example/</loc>",
		"<loc>https://firstsun.example/gallery</loc>",
		"<loc>https://firstsun.example/news/new-solar-farm</loc>",
		"<loc>https://firstsun.example/news/a2</loc>",
		`hreflang="ar" href="https://firstsun.example/news/new-solar-farm?lang=ar"`,
		`hreflang="en" href="https://firstsun.example/news/new-solar-farm?lang=en"`,
		`hreflang="x-default" href="https://firstsun.example/news/new-solar-farm"`,
		"<lastmod>2026-03-01T09:30:00Z</lastmod>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}
	if strings.Contains(out, "/news/draft") {
		t.Error("sitemap should not list drafts")
	}
}

func TestLatestUpdateIgnoresDrafts(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := LatestUpdate([]model.Article{
		{Published: true, UpdatedAt: base},
		{Published: false, UpdatedAt: base.Add(24 * time.Hour)},
	})
	if !got.Equal(base) {
		t.Errorf("LatestUpdate() = %v, want %v", got, base)
	}
	if !LatestUpdate(nil).IsZero() {
		t.Error("LatestUpdate(nil) should be zero")
	}
}
