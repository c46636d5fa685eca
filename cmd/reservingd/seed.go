package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/claimworks/reserving/pkg/reserving"
)

type seedCode struct {
	code        string
	description string
	category    reserving.CoverageCategory
	unit        reserving.UnitType
	rateLow     int64
	rateHigh    int64
}

// standardHODCodes is the default head-of-damage catalog loaded on first run.
// Rate bands are indicative GBP figures; surveyors override per item.
func standardHODCodes() ([]reserving.HODCode, error) {
	seeds := []seedCode{
		{"BLD-STR", "Structural repairs", reserving.CategoryBuilding, reserving.UnitPerItem, 500, 25000},
		{"BLD-ROF", "Roof repairs and replacement", reserving.CategoryBuilding, reserving.UnitPerSquareMetre, 80, 220},
		{"BLD-DRY", "Drying and dehumidification", reserving.CategoryBuilding, reserving.UnitPerItem, 300, 2500},
		{"BLD-DEC", "Internal decoration", reserving.CategoryBuilding, reserving.UnitPerSquareMetre, 12, 45},
		{"BLD-FLR", "Flooring replacement", reserving.CategoryBuilding, reserving.UnitPerSquareMetre, 25, 120},
		{"BLD-ELE", "Electrical repairs and rewiring", reserving.CategoryBuilding, reserving.UnitPerHour, 45, 85},
		{"BLD-PLM", "Plumbing and heating repairs", reserving.CategoryBuilding, reserving.UnitPerHour, 50, 95},
		{"BLD-KIT", "Kitchen replacement", reserving.CategoryBuilding, reserving.UnitPerItem, 3000, 18000},
		{"BLD-BTH", "Bathroom replacement", reserving.CategoryBuilding, reserving.UnitPerItem, 2000, 9000},
		{"CNT-FRN", "Furniture replacement", reserving.CategoryContents, reserving.UnitPerItem, 100, 3000},
		{"CNT-APP", "Appliance replacement", reserving.CategoryContents, reserving.UnitPerItem, 150, 1500},
		{"CNT-TEX", "Clothing and textiles", reserving.CategoryContents, reserving.UnitPerItem, 20, 400},
		{"CNT-RST", "Contents restoration and cleaning", reserving.CategoryContents, reserving.UnitPerItem, 50, 800},
		{"AAC-RNT", "Temporary accommodation rental", reserving.CategoryAlternativeAccommodation, reserving.UnitPerItem, 800, 3500},
		{"AAC-STO", "Furniture storage", reserving.CategoryAlternativeAccommodation, reserving.UnitPerItem, 80, 350},
		{"FEE-SUR", "Surveyor fees", reserving.CategoryProfessionalFees, reserving.UnitPercentage, 5, 12},
		{"FEE-ENG", "Structural engineer fees", reserving.CategoryProfessionalFees, reserving.UnitPerHour, 90, 180},
		{"CSQ-RNT", "Loss of rent", reserving.CategoryConsequential, reserving.UnitPerItem, 500, 2500},
		{"CSQ-BIZ", "Business interruption", reserving.CategoryConsequential, reserving.UnitPerItem, 1000, 20000},
	}

	codes := make([]reserving.HODCode, 0, len(seeds))
	for _, seed := range seeds {
		codeID, err := reserving.NewHODCodeID(uuid.NewString())
		if err != nil {
			return nil, fmt.Errorf("hod code id for %s: %w", seed.code, err)
		}
		codes = append(codes, reserving.HODCode{
			CodeID:          codeID,
			Code:            seed.code,
			Description:     seed.description,
			Category:        seed.category,
			Unit:            seed.unit,
			TypicalRateLow:  decimal.NewFromInt(seed.rateLow),
			TypicalRateHigh: decimal.NewFromInt(seed.rateHigh),
		})
	}
	return codes, nil
}
