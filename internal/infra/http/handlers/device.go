package handlers

import (
	"regexp"
	"strings"
)

var (
	androidDeviceRe = regexp.MustCompile(`(?i)Android\s+[\d.]+;\s*([^)]+)\)`)
	brandModelRe    = regexp.MustCompile(`([A-Za-z]+)\s+([A-Z0-9-]+)`)

	knownBrands = map[string]string{
		"samsung": "Samsung",
		"xiaomi":  "Xiaomi",
		"huawei":  "Huawei",
		"oneplus": "OnePlus",
		"google":  "Google",
	}

	iphoneModels = []struct{ token, name string }{
		{"iphone15", "iPhone 15"},
		{"iphone14", "iPhone 14"},
		{"iphone13", "iPhone 13"},
		{"iphone12", "iPhone 12"},
		{"iphone11", "iPhone 11"},
	}
)

// PhoneModel tenta extrair o aparelho do user agent. Desktop volta "".
func PhoneModel(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "iphone"):
		for _, m := range iphoneModels {
			if strings.Contains(ua, m.token) {
				return m.name
			}
		}
		return "iPhone"

	case strings.Contains(ua, "ipad"):
		switch {
		case strings.Contains(ua, "ipad pro"):
			return "iPad Pro"
		case strings.Contains(ua, "ipad air"):
			return "iPad Air"
		case strings.Contains(ua, "ipad mini"):
			return "iPad Mini"
		}
		return "iPad"

	case strings.Contains(ua, "android"):
		return androidModel(userAgent)
	}

	return ""
}

func androidModel(userAgent string) string {
	m := androidDeviceRe.FindStringSubmatch(userAgent)
	if m == nil {
		return "Android Device"
	}
	device := m[1]

	if bm := brandModelRe.FindStringSubmatch(device); bm != nil {
		brand, model := bm[1], bm[2]
		for key, label := range knownBrands {
			if strings.Contains(strings.ToLower(brand), key) {
				return label + " " + model
			}
		}
		return brand + " " + model
	}

	first, _, _ := strings.Cut(device, ";")
	return strings.TrimSpace(first)
}
