package catalog

import "github.com/shopspring/decimal"

// Categories lists the storefront navigation categories. "All" disables
// category filtering.
var Categories = []string{"All", "Jackets", "Tops", "Pants", "Accessories"}

// Sizes lists every size the storefront can render as a filter chip.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL", "28", "30", "32", "34", "36"}

// defaultProducts is the built-in catalog, used when no catalog file is
// configured.
var defaultProducts = []Product{
	{
		ID:              "1",
		Name:            "Recycled Cotton Hoodie",
		Description:     "Premium heavyweight hoodie crafted from 100% recycled cotton. Originally from a leading European brand's end-of-season stock, redesigned with our signature minimal aesthetic. Features a relaxed fit, ribbed cuffs, and kangaroo pocket.",
		Price:           decimal.NewFromInt(2750),
		OriginalPrice:   decimal.NewFromInt(4650),
		Image:           "assets/product-1.jpg",
		Images:          []string{"assets/product-1.jpg", "assets/product-2.jpg", "assets/product-3.jpg"},
		Category:        "Tops",
		Material:        "100% Recycled Cotton",
		RecycledContent: "Made from recovered textile waste and end-of-season inventory",
		Sizes:           []string{"S", "M", "L", "XL", "XXL"},
		IsNew:           true,
		InStock:         true,
	},
	{
		ID:              "2",
		Name:            "Olive Bomber Jacket",
		Description:     "Classic bomber silhouette in signature olive green. Sourced from premium brand surplus and reimagined with updated hardware and sustainable lining. Water-resistant outer shell with recycled polyester insulation.",
		Price:           decimal.NewFromInt(4500),
		OriginalPrice:   decimal.NewFromInt(8700),
		Image:           "assets/product-2.jpg",
		Images:          []string{"assets/product-2.jpg", "assets/product-1.jpg", "assets/product-3.jpg"},
		Category:        "Jackets",
		Material:        "Recycled Polyester Shell, Recycled Down Alternative Fill",
		RecycledContent: "Outer shell made from 45 recycled plastic bottles",
		Sizes:           []string{"S", "M", "L", "XL"},
		IsNew:           true,
		InStock:         true,
	},
	{
		ID:              "3",
		Name:            "Black Denim Jacket",
		Description:     "Timeless black denim jacket with a modern edge. Salvaged from premium denim stock and given new life with our signature detailing. Features classic button front, chest pockets, and adjustable waist tabs.",
		Price:           decimal.NewFromInt(3900),
		OriginalPrice:   decimal.NewFromInt(6850),
		Image:           "assets/product-3.jpg",
		Images:          []string{"assets/product-3.jpg", "assets/product-1.jpg", "assets/product-2.jpg"},
		Category:        "Jackets",
		Material:        "100% Recycled Denim",
		RecycledContent: "Each jacket saves approximately 1,800 gallons of water",
		Sizes:           []string{"S", "M", "L", "XL", "XXL"},
		InStock:         true,
	},
	{
		ID:              "4",
		Name:            "Charcoal Cargo Pants",
		Description:     "Modern cargo pants in versatile charcoal. Redesigned from premium workwear stock with a contemporary tapered fit. Features multiple utility pockets and adjustable ankle cuffs.",
		Price:           decimal.NewFromInt(2950),
		OriginalPrice:   decimal.NewFromInt(5150),
		Image:           "assets/product-1.jpg",
		Images:          []string{"assets/product-1.jpg", "assets/product-3.jpg", "assets/product-2.jpg"},
		Category:        "Pants",
		Material:        "Recycled Cotton Twill",
		RecycledContent: "Made from reclaimed textile manufacturing waste",
		Sizes:           []string{"28", "30", "32", "34", "36"},
		InStock:         true,
	},
	{
		ID:              "5",
		Name:            "Minimal Crew Neck Tee",
		Description:     "Essential crew neck t-shirt in organic cotton. Simple, versatile, and sustainably made. Perfect for layering or wearing on its own.",
		Price:           decimal.NewFromInt(1400),
		OriginalPrice:   decimal.NewFromInt(2350),
		Image:           "assets/product-2.jpg",
		Images:          []string{"assets/product-2.jpg", "assets/product-1.jpg", "assets/product-3.jpg"},
		Category:        "Tops",
		Material:        "Organic Cotton",
		RecycledContent: "Dyed with low-impact, water-saving techniques",
		Sizes:           []string{"S", "M", "L", "XL", "XXL"},
		IsNew:           true,
		InStock:         true,
	},
	{
		ID:              "6",
		Name:            "Utility Overshirt",
		Description:     "Versatile overshirt that works as a light jacket or heavy shirt. Multiple pockets and relaxed fit make it perfect for urban exploration.",
		Price:           decimal.NewFromInt(3400),
		OriginalPrice:   decimal.NewFromInt(5900),
		Image:           "assets/product-3.jpg",
		Images:          []string{"assets/product-3.jpg", "assets/product-2.jpg", "assets/product-1.jpg"},
		Category:        "Jackets",
		Material:        "Recycled Cotton Canvas",
		RecycledContent: "Buttons made from recycled materials",
		Sizes:           []string{"S", "M", "L", "XL"},
		InStock:         true,
	},
}
