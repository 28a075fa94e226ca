// internal/vendors/filters.go
package vendors

import (
	"regexp"
	"strings"

	"upkept-workers/internal/models"
)

const (
	minReviewsUnderPressure = 10
	minRatingUnderPressure  = 3.8
)

var stateToken = regexp.MustCompile(`\b([A-Z]{2})\b`)

// PassesHardFilters reports whether a vendor can structurally serve the
// request. All rules must hold:
//   - onsite work requires the vendor's state to match, when it is known
//   - regulated work requires the vendor to be licensed and insured
//   - non-standard urgency rejects vendors with too few reviews or a low rating
func PassesHardFilters(v models.Vendor, service models.ServiceProfile, ctx models.VendorSearchContext) bool {
	if service.Onsite {
		if state, ok := VendorState(v); ok && !strings.EqualFold(state, ctx.State) {
			return false
		}
	}

	if service.RequiresCredentials() && !(v.Licensed && v.Insured) {
		return false
	}

	if service.Urgency != models.UrgencyStandard {
		if v.ReviewCount < minReviewsUnderPressure || v.Rating < minRatingUnderPressure {
			return false
		}
	}

	return true
}

// VendorState returns the vendor's declared service-area state, falling back
// to a two-letter token parsed from its location. ok is false when neither
// source yields a state.
func VendorState(v models.Vendor) (string, bool) {
	if v.ServiceArea != nil && v.ServiceArea.State != "" {
		return v.ServiceArea.State, true
	}
	return ExtractState(v.Location)
}

// ExtractState finds the first isolated run of exactly two uppercase letters,
// e.g. "Austin, TX" yields "TX".
func ExtractState(location string) (string, bool) {
	m := stateToken.FindStringSubmatch(location)
	if m == nil {
		return "", false
	}
	return m[1], true
}
