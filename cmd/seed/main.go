package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cetakindo/printshop-backend/config"
	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the catalog from an XLSX workbook with three sheets:
//
//	Products: name, description, pricing_method, price, price_per_sqft
//	Variants: product, group, value, label, adjustment, parent_group, parent_value
//	Rolls:    product, roll_type, roll_width_ft, offcut_price_per_sqft
//
// Variant rows with a parent_group/parent_value pair become subgroups of the
// named parent option; rows without one become top-level groups.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	filePath := cfg.Catalog.SeedFile
	if len(os.Args) > 1 {
		filePath = os.Args[1]
	}
	if filePath == "" {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading catalog workbook: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer f.Close()

	products, err := importProducts(f)
	if err != nil {
		log.Fatal("Failed to import products:", err)
	}
	fmt.Printf("Imported products: %d\n", len(products))

	variantCount, err := importVariants(f, products)
	if err != nil {
		log.Fatal("Failed to import variants:", err)
	}
	fmt.Printf("Imported variant options: %d\n", variantCount)

	rollCount, err := importRolls(f, products)
	if err != nil {
		log.Fatal("Failed to import rolls:", err)
	}
	fmt.Printf("Imported roll options: %d\n", rollCount)

	fmt.Println("Catalog import completed successfully!")
}

func importProducts(f *excelize.File) (map[string]*model.Product, error) {
	rows, err := f.GetRows("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to read Products sheet: %w", err)
	}

	products := make(map[string]*model.Product)
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}

		method := model.PricingStandard
		if strings.EqualFold(strings.TrimSpace(row[2]), string(model.PricingRoll)) {
			method = model.PricingRoll
		}

		product := &model.Product{
			Name:          name,
			Description:   cell(row, 1),
			PricingMethod: method,
			Price:         parseFloat(cell(row, 3)),
			PricePerSqFt:  parseFloat(cell(row, 4)),
			IsActive:      true,
		}
		if err := db.GetDB().Create(product).Error; err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, name, err)
		}
		products[name] = product
	}
	return products, nil
}

func importVariants(f *excelize.File, products map[string]*model.Product) (int, error) {
	rows, err := f.GetRows("Variants")
	if err != nil {
		// The sheet is optional; a catalog without variants is valid.
		return 0, nil
	}

	// group key -> created group, so repeated rows share one group
	groups := make(map[string]*model.VariantGroup)
	// product|group|value -> option, for parent lookups
	options := make(map[string]*model.VariantOption)

	count := 0
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}

		productName := cell(row, 0)
		groupName := cell(row, 1)
		value := cell(row, 2)
		product, ok := products[productName]
		if !ok || groupName == "" || value == "" {
			continue
		}

		parentGroup := cell(row, 5)
		parentValue := cell(row, 6)

		var groupKey string
		var group *model.VariantGroup
		if parentGroup != "" && parentValue != "" {
			parent, ok := options[productName+"|"+parentGroup+"|"+parentValue]
			if !ok {
				return count, fmt.Errorf("row %d: parent option %s/%s not yet defined", i+1, parentGroup, parentValue)
			}
			groupKey = productName + "|sub|" + parentValue + "|" + groupName
			if group, ok = groups[groupKey]; !ok {
				group = &model.VariantGroup{ParentOptionID: &parent.ID, Name: groupName}
				if err := db.GetDB().Create(group).Error; err != nil {
					return count, err
				}
				groups[groupKey] = group
			}
		} else {
			groupKey = productName + "|" + groupName
			if group, ok = groups[groupKey]; !ok {
				group = &model.VariantGroup{ProductID: &product.ID, Name: groupName}
				if err := db.GetDB().Create(group).Error; err != nil {
					return count, err
				}
				groups[groupKey] = group
			}
		}

		option := &model.VariantOption{
			GroupID:         group.ID,
			Value:           value,
			Label:           cell(row, 3),
			PriceAdjustment: parseFloat(cell(row, 4)),
		}
		if err := db.GetDB().Create(option).Error; err != nil {
			return count, err
		}
		options[productName+"|"+groupName+"|"+value] = option
		count++
	}
	return count, nil
}

func importRolls(f *excelize.File, products map[string]*model.Product) (int, error) {
	rows, err := f.GetRows("Rolls")
	if err != nil {
		return 0, nil
	}

	count := 0
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}

		product, ok := products[cell(row, 0)]
		if !ok {
			continue
		}

		roll := &model.RollOption{
			ProductID:          product.ID,
			RollType:           cell(row, 1),
			RollWidthFt:        parseFloat(cell(row, 2)),
			OffcutPricePerSqFt: parseFloat(cell(row, 3)),
		}
		if roll.RollWidthFt <= 0 {
			return count, fmt.Errorf("row %d: roll width must be positive", i+1)
		}
		if err := db.GetDB().Create(roll).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
