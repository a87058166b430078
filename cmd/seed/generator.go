package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	prodDTO "github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var (
	brands     = []string{"Apple", "Samsung", "Google", "OnePlus", "Xiaomi", "Huawei", "Sony", "Motorola", "Nokia", "Oppo"}
	models     = []string{"Nova", "Edge", "Pulse", "Orbit", "Zen", "Prime", "Flip", "Spark", "Aura", "Vertex"}
	conditions = []string{"New", "Refurbished", "Used"}
	storages   = []int{64, 128, 256, 512}
	colors     = []string{"Black", "White", "Silver", "Blue", "Green", "Gold", "Purple"}
)

const skuAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func seedCategories() []dto.CreateCategoryInput {
	return []dto.CreateCategoryInput{
		{Name: "Smartphones", Description: strPtr("Latest and used smartphones")},
		{Name: "Feature Phones", Description: strPtr("Basic mobile phones")},
		{Name: "Refurbished", Description: strPtr("Professionally restored phones")},
	}
}

type generator struct {
	rnd *rand.Rand
}

func newGenerator(seed uint64) *generator {
	return &generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *generator) pick(values []string) string {
	return values[g.rnd.IntN(len(values))]
}

func (g *generator) code(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(skuAlphabet[g.rnd.IntN(len(skuAlphabet))])
	}
	return b.String()
}

// phone builds one product. New phones cost 500-1500, others 100-500.
func (g *generator) phone(categoryIDs []string) *prodDTO.CreateProductInput {
	brand := g.pick(brands)
	model := g.pick(models)
	condition := g.pick(conditions)
	storage := storages[g.rnd.IntN(len(storages))]
	color := g.pick(colors)
	suffix := strings.ToLower(g.code(5))

	minCents, maxCents := 10000, 50000
	if condition == "New" {
		minCents, maxCents = 50000, 150000
	}
	price := decimal.New(int64(minCents+g.rnd.IntN(maxCents-minCents+1)), -2)
	stock := g.rnd.IntN(21)

	input := &prodDTO.CreateProductInput{
		Name:          fmt.Sprintf("%s %s %dGB %s", brand, model, storage, condition),
		Slug:          slug.Make(fmt.Sprintf("%s %s %d %s %s", brand, model, storage, condition, suffix)),
		SKU:           fmt.Sprintf("PHONE-%s-%s", strings.ToUpper(brand[:3]), g.code(5)),
		Description:   fmt.Sprintf("%s %s %s with %dGB storage. Color: %s. Comes with original accessories.", condition, brand, model, storage, color),
		Price:         price,
		StockQuantity: &stock,
		ImageURL:      strPtr(fmt.Sprintf("https://picsum.photos/seed/%s/640/480", suffix)),
		Variants: []prodDTO.VariantInput{
			{Name: "Storage", Value: fmt.Sprintf("%dGB", storages[g.rnd.IntN(len(storages))])},
			{Name: "Color", Value: g.pick(colors)},
		},
	}
	if len(categoryIDs) > 0 {
		input.CategoryID = strPtr(categoryIDs[g.rnd.IntN(len(categoryIDs))])
	}
	return input
}

func strPtr(s string) *string { return &s }
