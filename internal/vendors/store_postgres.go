// internal/vendors/store_postgres.go
package vendors

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"upkept-workers/internal/models"
)

var ErrEmptyCatalog = errors.New("vendor catalog is empty")

const selectVendorsQuery = `
	SELECT id, name, specialty, categories, services, rating, review_count,
	       price_range, reliability_score, sources, estimated_price, availability,
	       availability_score, location, years_in_business, licensed, insured,
	       service_area, bbb_status
	FROM vendors
	ORDER BY seed_order, id`

// LoadVendors reads the vendor catalog from Postgres. List-valued columns
// hold JSON arrays; service_area holds a JSON object or NULL.
func LoadVendors(ctx context.Context, db *sql.DB) ([]models.Vendor, error) {
	rows, err := db.QueryContext(ctx, selectVendorsQuery)
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}
	defer rows.Close()

	var out []models.Vendor
	for rows.Next() {
		var (
			v                                     models.Vendor
			specialty, categories, services, srcs []byte
			serviceArea                           []byte
			availabilityScore                     sql.NullFloat64
			bbbStatus                             sql.NullString
			priceRange                            string
		)
		if err := rows.Scan(
			&v.ID, &v.Name, &specialty, &categories, &services, &v.Rating, &v.ReviewCount,
			&priceRange, &v.ReliabilityScore, &srcs, &v.EstimatedPrice, &v.Availability,
			&availabilityScore, &v.Location, &v.YearsInBusiness, &v.Licensed, &v.Insured,
			&serviceArea, &bbbStatus,
		); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}

		v.PriceRange = models.PriceRange(priceRange)
		if err := json.Unmarshal(specialty, &v.Specialty); err != nil {
			return nil, fmt.Errorf("vendor %s specialty: %w", v.ID, err)
		}
		if err := decodeList(categories, &v.Categories); err != nil {
			return nil, fmt.Errorf("vendor %s categories: %w", v.ID, err)
		}
		if err := decodeList(services, &v.Services); err != nil {
			return nil, fmt.Errorf("vendor %s services: %w", v.ID, err)
		}
		if err := decodeList(srcs, &v.Sources); err != nil {
			return nil, fmt.Errorf("vendor %s sources: %w", v.ID, err)
		}

		if availabilityScore.Valid {
			score := availabilityScore.Float64
			v.AvailabilityScore = &score
		}
		if len(serviceArea) > 0 {
			if err := json.Unmarshal(serviceArea, &v.ServiceArea); err != nil {
				return nil, fmt.Errorf("vendor %s service_area: %w", v.ID, err)
			}
		}
		if bbbStatus.Valid {
			v.BBBStatus = bbbStatus.String
		}

		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyCatalog
	}
	return out, nil
}

// LoadCatalog builds a Catalog from the vendors table.
func LoadCatalog(ctx context.Context, db *sql.DB) (*Catalog, error) {
	vs, err := LoadVendors(ctx, db)
	if err != nil {
		return nil, err
	}
	return NewCatalog(vs), nil
}

// decodeList leaves dst empty when the column is NULL.
func decodeList[T any](raw []byte, dst *[]T) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
