// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"github.com/mileusna/useragent"
)

// DeviceLabel renders a short "Browser on OS (type)" label for a session list.
func DeviceLabel(uaString string) string {
	if uaString == "" {
		return "Unknown device"
	}
	ua := useragent.Parse(uaString)

	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	os := ua.OS
	if os == "" {
		os = "Unknown"
	}

	var kind string
	switch {
	case ua.Mobile:
		kind = "mobile"
	case ua.Tablet:
		kind = "tablet"
	case ua.Bot:
		kind = "bot"
	default:
		kind = "desktop"
	}

	return browser + " on " + os + " (" + kind + ")"
}
