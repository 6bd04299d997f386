// Package useragent classifies a request's User-Agent string into the coarse
// device and browser categories the dashboard filters on. Classification is an
// ordered substring rule table, first match wins, so it stays testable as a
// pure function of the header.
package useragent

import "strings"

// Device classifications.
const (
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"
)

// BrowserUnknown is returned when no rule matches. User-facing copy is pt-BR.
const BrowserUnknown = "Desconhecido"

type rule struct {
	result  string
	markers []string
}

// deviceRules are checked in order; a tablet marker only counts when no
// mobile marker matched first.
var deviceRules = []rule{
	{DeviceMobile, []string{"mobile", "android", "iphone"}},
	{DeviceTablet, []string{"tablet", "ipad"}},
}

// browserRules are checked in order. Chrome precedes Safari on purpose:
// Chrome UAs also contain "safari", so the first match keeps them apart.
var browserRules = []rule{
	{"Chrome", []string{"chrome"}},
	{"Firefox", []string{"firefox"}},
	{"Safari", []string{"safari"}},
	{"Edge", []string{"edge"}},
	{"Opera", []string{"opera"}},
}

// Device returns the device classification for a User-Agent string.
func Device(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, r := range deviceRules {
		for _, marker := range r.markers {
			if strings.Contains(ua, marker) {
				return r.result
			}
		}
	}
	return DeviceDesktop
}

// Browser returns the browser classification for a User-Agent string.
func Browser(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, r := range browserRules {
		for _, marker := range r.markers {
			if strings.Contains(ua, marker) {
				return r.result
			}
		}
	}
	return BrowserUnknown
}
