package catalog

func intp(v int) *int { return &v }

// Seed is the demo collection loaded when no database is configured.
func Seed() []Product {
	return []Product{
		{ID: "1", Name: "Cyber Punk Hoodie", Description: "Premium cotton hoodie with holographic accents and LED trim.", Price: 4999, OriginalPrice: intp(6999), Category: "Hoodies", Sizes: []string{"S", "M", "L", "XL", "XXL"}, InStock: true, Featured: true, Discount: 30},
		{ID: "2", Name: "Neon Runner Jacket", Description: "Water-resistant jacket with reflective neon piping.", Price: 7999, OriginalPrice: intp(9999), Category: "Jackets", Sizes: []string{"S", "M", "L", "XL"}, InStock: true, Featured: true, Discount: 20},
		{ID: "3", Name: "Holographic Tee", Description: "Iridescent print tee in heavyweight cotton.", Price: 2499, Category: "T-Shirts", Sizes: []string{"S", "M", "L", "XL", "XXL"}, InStock: true},
		{ID: "4", Name: "Tech Cargo Pants", Description: "Utility cargo pants with magnetic pocket closures.", Price: 5999, Category: "Pants", Sizes: []string{"S", "M", "L", "XL"}, InStock: true, Featured: true},
		{ID: "5", Name: "Aurora Dress", Description: "Color-shifting evening dress.", Price: 8999, OriginalPrice: intp(11999), Category: "Dresses", Sizes: []string{"S", "M", "L"}, InStock: true, Featured: true, Discount: 25},
		{ID: "6", Name: "Digital Wave Sneakers", Description: "Reactive-sole sneakers.", Price: 12999, Category: "Footwear", Sizes: []string{"7", "8", "9", "10", "11"}, InStock: true, Featured: true},
		{ID: "7", Name: "Quantum Shirt", Description: "Wrinkle-free smart shirt.", Price: 3499, OriginalPrice: intp(4499), Category: "Shirts", Sizes: []string{"S", "M", "L", "XL"}, InStock: true, Discount: 22},
		{ID: "8", Name: "Neon Mesh Top", Description: "Layered mesh top with glow seams.", Price: 2999, Category: "Tops", Sizes: []string{"S", "M", "L"}, InStock: true},
	}
}
