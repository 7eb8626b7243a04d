// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"net/url"
	"strings"
	"time"
)

// Article media types.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Article is a news article.
type Article struct {
	ID           string    `json:"id"`
	TitleAr      string    `json:"title_ar"`
	TitleEn      string    `json:"title_en"`
	ContentAr    string    `json:"content_ar"`
	ContentEn    string    `json:"content_en"`
	ExcerptAr    string    `json:"excerpt_ar"`
	ExcerptEn    string    `json:"excerpt_en"`
	ImageURL     string    `json:"image_url,omitempty"`
	MediaType    string    `json:"media_type"`
	Published    bool      `json:"published"`
	Slug         string    `json:"slug"`
	AuthorID     string    `json:"author_id,omitempty"`
	DisplayOrder int64     `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecordID implements the dashboard record contract.
func (a Article) RecordID() string { return a.ID }

// Matches reports whether the title or excerpt in lang contains query.
func (a Article) Matches(query, lang string) bool {
	return matchesAny(query,
		Pick(lang, a.TitleAr, a.TitleEn),
		Pick(lang, a.ExcerptAr, a.ExcerptEn),
	)
}

// Input returns the editable fields.
func (a Article) Input() ArticleInput {
	return ArticleInput{
		TitleAr:      a.TitleAr,
		TitleEn:      a.TitleEn,
		ContentAr:    a.ContentAr,
		ContentEn:    a.ContentEn,
		ExcerptAr:    a.ExcerptAr,
		ExcerptEn:    a.ExcerptEn,
		ImageURL:     a.ImageURL,
		MediaType:    a.MediaType,
		Published:    a.Published,
		DisplayOrder: a.DisplayOrder,
	}
}

// ThumbnailURL returns the YouTube preview image for video articles and
// the image URL otherwise.
func (a Article) ThumbnailURL() string {
	if a.MediaType == MediaTypeVideo {
		if id := YouTubeVideoID(a.ImageURL); id != "" {
			return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
		}
	}
	return a.ImageURL
}

// YouTubeVideoID extracts the video id from youtu.be and youtube.com links.
func YouTubeVideoID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "youtu.be"):
		return strings.Trim(u.Path, "/")
	case strings.Contains(host, "youtube.com"):
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(u.Path, "/embed/"); ok {
			return strings.Trim(rest, "/")
		}
	}
	return ""
}

// LocalizedArticle adds the active-language projection to an Article.
type LocalizedArticle struct {
	Article
	Title        string `json:"title"`
	Excerpt      string `json:"excerpt"`
	Content      string `json:"content,omitempty"`
	ContentHTML  string `json:"content_html,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Localize projects the bilingual fields onto lang. Content is filled by
// the caller, which renders it.
func (a Article) Localize(lang string) LocalizedArticle {
	return LocalizedArticle{
		Article:      a,
		Title:        Pick(lang, a.TitleAr, a.TitleEn),
		Excerpt:      Pick(lang, a.ExcerptAr, a.ExcerptEn),
		ThumbnailURL: a.ThumbnailURL(),
	}
}

// ArticleInput is the article form.
type ArticleInput struct {
	TitleEn      string `json:"title_en" label:"English title" validate:"required,max=300"`
	TitleAr      string `json:"title_ar" label:"Arabic title" validate:"required,max=300"`
	ExcerptEn    string `json:"excerpt_en" label:"English excerpt" validate:"required,max=1000"`
	ExcerptAr    string `json:"excerpt_ar" label:"Arabic excerpt" validate:"required,max=1000"`
	ContentEn    string `json:"content_en" label:"English content" validate:"required,max=50000"`
	ContentAr    string `json:"content_ar" label:"Arabic content" validate:"required,max=50000"`
	ImageURL     string `json:"image_url" label:"Media URL" validate:"omitempty,url,max=2000"`
	MediaType    string `json:"media_type" label:"Media type" validate:"required,oneof=image video"`
	Published    bool   `json:"published"`
	DisplayOrder int64  `json:"display_order" label:"Order" validate:"min=0"`
}

// Normalize implements validation.Normalizer. An empty media type means image.
func (in *ArticleInput) Normalize() {
	trimAll(&in.TitleEn, &in.TitleAr, &in.ExcerptEn, &in.ExcerptAr,
		&in.ContentEn, &in.ContentAr, &in.ImageURL, &in.MediaType)
	if in.MediaType == "" {
		in.MediaType = MediaTypeImage
	}
}
