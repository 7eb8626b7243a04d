// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler files of the public site: a bilingual
// sitemap and robots.txt.
package seo

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/firstsun-go/internal/model"
)

// Sitemap XML namespaces.
const (
	XMLNamespace      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNamespace    = "http://www.w3.org/1999/xhtml"
	hreflangXDefault  = "x-default"
	articlePathPrefix = "/news/"
)

// Public pages of the site.
const (
	PathHome    = "/"
	PathGallery = "/gallery"
	PathNews    = "/news"
)

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequency values used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// AlternateLink points crawlers at the same page in another language.
type AlternateLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string          `xml:"loc"`
	LastMod    string          `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq      `xml:"changefreq,omitempty"`
	Priority   string          `xml:"priority,omitempty"`
	Alternates []AlternateLink `xml:"xhtml:link"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder collects the public pages. Every page is listed once
// with one alternate per language; the language is selected by ?lang=.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: strings.TrimSuffix(siteURL, "/")}
}

// AddPage adds path. A zero updatedAt omits lastmod.
func (b *SitemapBuilder) AddPage(path string, updatedAt time.Time, freq ChangeFreq, priority string) {
	u := SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: freq,
		Priority:   priority,
		Alternates: b.alternates(path),
	}
	if !updatedAt.IsZero() {
		u.LastMod = updatedAt.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// AddStaticPages adds the home, gallery and news pages. lastContent dates
// the home and news pages.
func (b *SitemapBuilder) AddStaticPages(lastContent time.Time) {
	b.AddPage(PathHome, lastContent, ChangeFreqDaily, "1.0")
	b.AddPage(PathGallery, time.Time{}, ChangeFreqWeekly, "0.8")
	b.AddPage(PathNews, lastContent, ChangeFreqDaily, "0.8")
}

// AddArticles adds one entry per published article. Drafts are skipped.
func (b *SitemapBuilder) AddArticles(articles []model.Article) {
	for _, a := range articles {
		if !a.Published {
			continue
		}
		b.AddPage(ArticlePath(a), a.UpdatedAt, ChangeFreqMonthly, "0.6")
	}
}

// Len returns the number of entries.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		XHTML: XHTMLNamespace,
		URLs:  b.urls,
	}

	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), xmlBytes...), nil
}

func (b *SitemapBuilder) alternates(path string) []AlternateLink {
	links := make([]AlternateLink, 0, len(model.SupportedLanguages)+1)
	for _, lang := range model.SupportedLanguages {
		links = append(links, AlternateLink{
			Rel:      "alternate",
			Hreflang: lang,
			Href:     b.siteURL + path + "?lang=" + url.QueryEscape(lang),
		})
	}
	return append(links, AlternateLink{Rel: "alternate", Hreflang: hreflangXDefault, Href: b.siteURL + path})
}

// ArticlePath returns the public path of an article, by slug when it has
// one.
func ArticlePath(a model.Article) string {
	if a.Slug != "" {
		return articlePathPrefix + url.PathEscape(a.Slug)
	}
	return articlePathPrefix + a.ID
}

// LatestUpdate returns the newest UpdatedAt among published articles.
func LatestUpdate(articles []model.Article) time.Time {
	var latest time.Time
	for _, a := range articles {
		if a.Published && a.UpdatedAt.After(latest) {
			latest = a.UpdatedAt
		}
	}
	return latest
}
