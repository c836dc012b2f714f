package identity

import (
	"regexp"
	"strings"
)

// Administrative noise the extraction tends to carry over from the card back:
// postal hierarchy labels and stray Aadhaar digits have no place on a bill.
var (
	reAadhaarInText = regexp.MustCompile(`\b\d{4}[\s\-]?\d{4}[\s\-]?\d{4}\b`)
	reAdminTerms    = regexp.MustCompile(`(?i)(VTC|PO|Post Office|Sub District|District|PIN Code|Pincode|Pin|Tehsil|Block|Village):\s*[^,\n]*[,\n]?`)
	reSpaceRuns     = regexp.MustCompile(`[ \t]+`)
)

// CleanAddress strips administrative labels (with their values), embedded
// Aadhaar numbers and whitespace runs from an extracted address, then rejoins
// the surviving comma-separated parts.
func CleanAddress(address string) string {
	if address == "" {
		return ""
	}

	address = reAadhaarInText.ReplaceAllString(address, "")
	address = reAdminTerms.ReplaceAllString(address, "")
	address = strings.ReplaceAll(address, "\n", ",")
	address = reSpaceRuns.ReplaceAllString(address, " ")
	address = strings.Trim(address, ", ")

	parts := []string{}
	for _, part := range strings.Split(address, ",") {
		part = strings.TrimSpace(part)
		if len(part) > 1 {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// SplitAddress breaks an address into the two lines the bill layout offers.
// Comma-separated parts are divided at the midpoint; a short address goes
// entirely on the first line.
func SplitAddress(address string) (line1, line2 string) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", ""
	}

	parts := []string{}
	for _, part := range strings.Split(address, ",") {
		if p := strings.TrimSpace(part); p != "" {
			parts = append(parts, p)
		}
	}

	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	case 2:
		return parts[0] + ",", parts[1]
	default:
		mid := len(parts) / 2
		return strings.Join(parts[:mid], ", ") + ",", strings.Join(parts[mid:], ", ")
	}
}
