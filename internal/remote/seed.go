package remote

import "github.com/shopspring/decimal"

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func pricePtr(value string) *decimal.Decimal {
	v := decimal.RequireFromString(value)
	return &v
}

func seedCategories() []Category {
	return []Category{
		{ID: 1, Name: "Tênis", Image: "/images/categories/tenis.jpg", Description: "Tênis esportivos e casuais", Featured: true},
		{ID: 2, Name: "Corrida", Image: "/images/categories/corrida.jpg", Description: "Calçados para corrida de rua e trilha", Featured: true},
		{ID: 3, Name: "Skate", Image: "/images/categories/skate.jpg", Description: "Linha street e skate", Featured: false},
		{ID: 4, Name: "Casual", Image: "/images/categories/casual.jpg", Description: "Modelos para o dia a dia", Featured: false},
	}
}

func seedProducts() []Product {
	return []Product{
		{
			ID: 1, Name: "Tênis Runner Pro", Brand: "Vortex",
			Description: "Tênis de corrida com amortecimento responsivo e cabedal em mesh respirável.",
			Price:       price("399.90"), OldPrice: pricePtr("499.90"), CategoryID: 2,
			Images:   []string{"/images/products/runner-pro-1.jpg", "/images/products/runner-pro-2.jpg"},
			Featured: true, OnSale: true, BestSeller: true, Stock: 12, Rating: 4.7, ReviewCount: 128,
		},
		{
			ID: 2, Name: "Tênis Street Flow", Brand: "Urbano",
			Description: "Modelo street com solado vulcanizado e reforço no colarinho.",
			Price:       price("249.90"), CategoryID: 3,
			Images:   []string{"/images/products/street-flow-1.jpg"},
			Featured: false, OnSale: false, BestSeller: true, Stock: 8, Rating: 4.4, ReviewCount: 56,
		},
		{
			ID: 3, Name: "Tênis Clássico Couro", Brand: "Vortex",
			Description: "Couro legítimo com forro acolchoado, ideal para o uso diário.",
			Price:       price("329.90"), OldPrice: pricePtr("379.90"), CategoryID: 4,
			Images:   []string{"/images/products/classico-couro-1.jpg", "/images/products/classico-couro-2.jpg"},
			Featured: true, OnSale: true, BestSeller: false, Stock: 15, Rating: 4.8, ReviewCount: 214,
		},
		{
			ID: 4, Name: "Tênis Trail Max", Brand: "Cume",
			Description: "Solado com travas multidirecionais para trilhas e terrenos irregulares.",
			Price:       price("459.90"), CategoryID: 2,
			Images:   []string{"/images/products/trail-max-1.jpg"},
			Featured: false, OnSale: false, BestSeller: false, Stock: 5, Rating: 4.5, ReviewCount: 37,
		},
		{
			ID: 5, Name: "Tênis Slip-on Leve", Brand: "Urbano",
			Description: "Calce rápido sem cadarço, palmilha em EVA de alta densidade.",
			Price:       price("179.90"), OldPrice: pricePtr("219.90"), CategoryID: 4,
			Images:   []string{"/images/products/slip-on-1.jpg"},
			Featured: false, OnSale: true, BestSeller: false, Stock: 20, Rating: 4.2, ReviewCount: 89,
		},
		{
			ID: 6, Name: "Tênis Pista 400", Brand: "Vortex",
			Description: "Placa de propulsão em nylon para treinos de velocidade.",
			Price:       price("549.90"), CategoryID: 2,
			Images:   []string{"/images/products/pista-400-1.jpg", "/images/products/pista-400-2.jpg"},
			Featured: true, OnSale: false, BestSeller: true, Stock: 7, Rating: 4.9, ReviewCount: 162,
		},
		{
			ID: 7, Name: "Tênis Skate Grip", Brand: "Prancha",
			Description: "Camurça resistente à abrasão com colagem reforçada no bico.",
			Price:       price("269.90"), CategoryID: 3,
			Images:   []string{"/images/products/skate-grip-1.jpg"},
			Featured: false, OnSale: false, BestSeller: false, Stock: 10, Rating: 4.3, ReviewCount: 44,
		},
		{
			ID: 8, Name: "Tênis Conforto Diário", Brand: "Cume",
			Description: "Entressola macia com suporte de arco para longas caminhadas.",
			Price:       price("299.90"), OldPrice: pricePtr("349.90"), CategoryID: 4,
			Images:   []string{"/images/products/conforto-diario-1.jpg"},
			Featured: true, OnSale: true, BestSeller: false, Stock: 18, Rating: 4.6, ReviewCount: 97,
		},
	}
}
