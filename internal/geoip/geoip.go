// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves client IP addresses to ISO country codes with a
// MaxMind GeoLite2-Country database.
package geoip

import (
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/maxminddb-golang"
)

// CountryLocal is reported for loopback and private addresses.
const CountryLocal = "LOCAL"

// countryRecord is the part of a GeoLite2-Country record we read.
type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Locator looks up countries. The zero value and a Locator opened with an
// empty path are disabled: public addresses resolve to "".
type Locator struct {
	mu sync.RWMutex
	db *maxminddb.Reader
}

// Open loads the database at path. An empty path returns a disabled
// Locator.
func Open(path string) (*Locator, error) {
	if path == "" {
		return &Locator{}, nil
	}
	db, err := maxminddb.Open(path)
	if err != nil {
		return &Locator{}, fmt.Errorf("opening GeoIP database: %w", err)
	}
	return &Locator{db: db}, nil
}

// Enabled reports whether a database is loaded.
func (l *Locator) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Country returns the ISO code for ip, CountryLocal for loopback and
// private addresses, or "" when it is unknown.
func (l *Locator) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() {
		return CountryLocal
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.db == nil {
		return ""
	}
	var rec countryRecord
	if err := l.db.Lookup(parsed, &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}

// Close releases the database.
func (l *Locator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
