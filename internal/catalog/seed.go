package catalog

// SeedDemo fills r with the three default skin types and a handful of
// products for local development without a database.
func SeedDemo(r *MemoryRepo) {
	r.AddSkinTypes(
		SkinType{ID: "skin-combination", Name: "Combination"},
		SkinType{ID: "skin-dry", Name: "Dry"},
		SkinType{ID: "skin-oily", Name: "Oily"},
	)

	acne := Category{ID: "cat-acne", Name: "Acne treatment"}
	antiAging := Category{ID: "cat-anti-aging", Name: "Anti-aging serum"}
	moisturizer := Category{ID: "cat-moisturizer", Name: "Moisturizer"}
	cleanser := Category{ID: "cat-cleanser", Name: "Cleanser"}
	brand := Brand{ID: "brand-demo", Name: "Demo Labs"}

	r.AddProduct(Product{
		ID: "prod-001", Name: "Salicylic Acid Gel", Description: "2% BHA spot gel",
		Price: 14.5, Category: acne, Brand: brand,
		Images: []ProductImage{{URL: "/static/products/prod-001.jpg", IsThumbnail: true}},
	}, "skin-oily", "skin-combination")
	r.AddProduct(Product{
		ID: "prod-002", Name: "Foaming Cleanser", Description: "Gentle daily foaming cleanser",
		Price: 9.9, Category: cleanser, Brand: brand,
		Images: []ProductImage{{URL: "/static/products/prod-002.jpg", IsThumbnail: true}},
	}, "skin-oily", "skin-combination", "skin-dry")
	r.AddProduct(Product{
		ID: "prod-003", Name: "Retinol Night Serum", Description: "0.3% encapsulated retinol",
		Price: 32, Category: antiAging, Brand: brand,
		Images: []ProductImage{{URL: "/static/products/prod-003.jpg", IsThumbnail: true}},
	}, "skin-dry", "skin-combination")
	r.AddProduct(Product{
		ID: "prod-004", Name: "Ceramide Barrier Cream", Description: "Rich cream for dry skin",
		Price: 21, Category: moisturizer, Brand: brand,
	}, "skin-dry")
}
