// internal/vendors/scoring.go
package vendors

import (
	"math"
	"strings"

	"upkept-workers/internal/models"
)

const (
	categoryExactMatch     = 1.0
	categoryLooseMatch     = 0.8
	categoryMatchWeight    = 0.65
	keywordMatchWeight     = 0.35
	neutralAvailability    = 0.5
	ratingFloor            = 3.5
	ratingSpan             = 1.5
	reviewSaturationLog    = 3.0
	trustRatingWeight      = 0.5
	trustReviewsWeight     = 0.2
	trustReliabilityWeight = 0.3
)

// ScoreWeights are the per-component weights of the composite score.
// Every table entry sums to 1.
type ScoreWeights struct {
	Relevance    float64
	Trust        float64
	Compliance   float64
	Price        float64
	Availability float64
}

func (w ScoreWeights) Sum() float64 {
	return w.Relevance + w.Trust + w.Compliance + w.Price + w.Availability
}

var modeWeights = map[models.OptimizationMode]ScoreWeights{
	models.ModeCost: {
		Relevance:    0.25,
		Trust:        0.20,
		Compliance:   0.15,
		Price:        0.35,
		Availability: 0.05,
	},
	models.ModeQuality: {
		Relevance:    0.30,
		Trust:        0.30,
		Compliance:   0.20,
		Price:        0.10,
		Availability: 0.10,
	},
}

// WeightsFor returns the weight table for a mode. Unknown modes use quality.
func WeightsFor(mode models.OptimizationMode) ScoreWeights {
	return modeWeights[mode.Normalize()]
}

// ComputeRelevanceScore rates how well a vendor's name, categories, services
// and specialty match the requested service, in [0,1].
func ComputeRelevanceScore(v models.Vendor, service models.ServiceProfile) float64 {
	haystack := vendorHaystack(v)

	keywords := service.Keywords
	if len(keywords) == 0 {
		keywords = []string{string(service.Category)}
	}

	hits := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			hits++
		}
	}
	keywordFraction := float64(hits) / math.Max(1, float64(len(keywords)))

	categoryMatch := 0.0
	switch {
	case v.HasCategory(service.Category):
		categoryMatch = categoryExactMatch
	case looseMatchAny(v.Specialty, strings.ToLower(string(service.Category))):
		categoryMatch = categoryLooseMatch
	}

	return clamp01(categoryMatchWeight*categoryMatch + keywordMatchWeight*keywordFraction)
}

func vendorHaystack(v models.Vendor) string {
	parts := make([]string, 0, 1+len(v.Categories)+len(v.Services)+len(v.Specialty))
	parts = append(parts, v.Name)
	for _, c := range v.Categories {
		parts = append(parts, string(c))
	}
	parts = append(parts, v.Services...)
	parts = append(parts, v.Specialty...)
	return strings.ToLower(strings.Join(parts, " "))
}

// ScoreVendor combines relevance, trust, compliance, price closeness to
// market and availability into a weighted total for the given mode.
// A cached MatchScore on the vendor is reused as the relevance component.
func ScoreVendor(v models.Vendor, service models.ServiceProfile, marketPrice float64, mode models.OptimizationMode) models.VendorScoreBreakdown {
	ratingNorm := clamp01((v.Rating - ratingFloor) / ratingSpan)
	reviewsNorm := clamp01(math.Log10(float64(v.ReviewCount)+1) / reviewSaturationLog)
	reliabilityNorm := clamp01(v.ReliabilityScore / 100)
	trust := clamp01(trustRatingWeight*ratingNorm + trustReviewsWeight*reviewsNorm + trustReliabilityWeight*reliabilityNorm)

	var relevance float64
	if v.MatchScore != nil {
		relevance = clamp01(*v.MatchScore)
	} else {
		relevance = clamp01(ComputeRelevanceScore(v, service))
	}

	compliance := 1.0
	if service.RequiresCredentials() {
		compliance = 0
		if v.Licensed {
			compliance += 0.5
		}
		if v.Insured {
			compliance += 0.5
		}
	}

	priceDelta := 1.0
	if marketPrice > 0 {
		priceDelta = math.Abs(v.EstimatedPrice-marketPrice) / marketPrice
	}
	price := clamp01(1 - priceDelta)

	avail := neutralAvailability
	if v.AvailabilityScore != nil {
		avail = *v.AvailabilityScore
	}
	avail = clamp01(avail)

	w := WeightsFor(mode)
	total := w.Relevance*relevance +
		w.Trust*trust +
		w.Compliance*compliance +
		w.Price*price +
		w.Availability*avail

	return models.VendorScoreBreakdown{
		Total:        clamp01(total),
		Relevance:    relevance,
		Trust:        trust,
		Compliance:   compliance,
		Price:        price,
		Availability: avail,
	}
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
