package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// DemoProducts returns the compiled-in catalog served when the products
// table is unreachable or empty. Each call returns fresh copies.
func DemoProducts() []domain.Product {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	return []domain.Product{
		{
			ID:          "1",
			Title:       "Air Jordan 1 Retro High OG",
			Description: "The sneaker that started it all. Featuring premium leather, classic color blocking, and the iconic Air cushioning that changed the game forever.",
			Price:       decimal.NewFromInt(3499),
			SKU:         "NK-AJ1-HIGH",
			Color:       "Chicago / Red / White",
			Category:    "Sneakers",
			Sizes:       map[string]int{"UK7": 10, "UK8": 10, "UK9": 5, "UK10": 2},
			Images: []string{
				"https://images.unsplash.com/photo-1552346154-21d32810aba3?q=80&w=2070&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1575537302964-96cd47c06b1b?q=80&w=2070&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1556906781-9a412961d289?q=80&w=2070&auto=format&fit=crop",
			},
			CreatedAt: day(1),
		},
		{
			ID:          "2",
			Title:       "Yeezy Slide Pure",
			Description: "Minimalist design, maximum comfort. The EVA foam construction provides lightweight durability while the soft top layer in the footbed offers immediate step-in comfort.",
			Price:       decimal.NewFromInt(1299),
			SKU:         "AD-YZ-SLIDE",
			Color:       "Bone / Pure",
			Category:    "Slides",
			Sizes:       map[string]int{"UK6": 20, "UK7": 15, "UK8": 10, "UK9": 10},
			Images: []string{
				"https://images.unsplash.com/photo-1606206591513-39d12d46e336?q=80&w=1200&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1617251722822-721245051834?q=80&w=1200&auto=format&fit=crop",
			},
			CreatedAt: day(2),
		},
		{
			ID:          "3",
			Title:       "Nike Dunk Low Panda",
			Description: "The street style staple. Black and white colorway that goes with absolutely everything. Crisp leather overlays and the heritage Dunk silhouette.",
			Price:       decimal.NewFromInt(2699),
			SKU:         "NK-DL-PANDA",
			Color:       "Black / White",
			Category:    "Sneakers",
			Sizes:       map[string]int{"UK6": 5, "UK7": 20, "UK8": 15, "UK9": 10},
			Images: []string{
				"https://images.unsplash.com/photo-1635669049909-5c421b145693?q=80&w=2000&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1628551174620-3b9994c927f8?q=80&w=2000&auto=format&fit=crop",
			},
			CreatedAt: day(7),
		},
		{
			ID:          "4",
			Title:       "Yeezy Foam Runner",
			Description: "Futuristic aerodynamics. The unique foam compound blends lightweight durability with futuristic design lines.",
			Price:       decimal.NewFromInt(1999),
			SKU:         "AD-YZ-FOAM",
			Color:       "Sand",
			Category:    "Clogs",
			Sizes:       map[string]int{"UK7": 8, "UK8": 8, "UK9": 8},
			Images: []string{
				"https://images.unsplash.com/photo-1664188612179-8266224ce17a?q=80&w=2000&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1659614264628-9844439c2c62?q=80&w=2000&auto=format&fit=crop",
			},
			CreatedAt: day(4),
		},
		{
			ID:          "5",
			Title:       "Crocs Echo Clog",
			Description: "The Echo Collection is for those who want comfort without compromising their look. Fully molded style with bold sculpting and sport inspiration.",
			Price:       decimal.NewFromInt(1899),
			SKU:         "CR-ECHO-005",
			Color:       "Atmosphere",
			Category:    "Clogs",
			Sizes:       map[string]int{"UK6": 12, "UK7": 12, "UK8": 12},
			Images: []string{
				"https://images.unsplash.com/photo-1647448834789-9831c19d45e5?q=80&w=2000&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1628253747716-0c4f5c90fdda?q=80&w=2000&auto=format&fit=crop",
			},
			CreatedAt: day(5),
		},
		{
			ID:          "6",
			Title:       "Adidas Ultraboost 22",
			Description: "Incredible energy return. The boost midsole makes you feel like you're walking on clouds. Primeknit upper hugs your foot.",
			Price:       decimal.NewFromInt(2999),
			SKU:         "AD-UB-006",
			Color:       "Core Black",
			Category:    "Shoes",
			Sizes:       map[string]int{"UK7": 10, "UK8": 15, "UK9": 5},
			Images: []string{
				"https://images.unsplash.com/photo-1608231387042-66d1773070a5?q=80&w=2000&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1587563871167-1ee9c731aef4?q=80&w=2000&auto=format&fit=crop",
			},
			CreatedAt: day(6),
		},
		{
			ID:          "7",
			Title:       "New Balance 550",
			Description: "Simple & Clean, not overbuilt. A tribute to the 90s pro ballers and the streetwear that defined a hoops generation.",
			Price:       decimal.NewFromInt(2799),
			SKU:         "NB-550-WHT",
			Color:       "White / Grey",
			Category:    "Sneakers",
			Sizes:       map[string]int{"UK7": 10, "UK8": 15, "UK9": 5},
			Images: []string{
				"https://images.unsplash.com/photo-1622359487771-4608c02c6110?q=80&w=2000&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1663499479261-75574dc6f6d0?q=80&w=2000&auto=format&fit=crop",
			},
			CreatedAt: day(8),
		},
		{
			ID:          "8",
			Title:       "Jordan 4 Retro Military Black",
			Description: "Industrial blue accents and neutral grey overlays make this AJ4 a versatile addition to any rotation.",
			Price:       decimal.NewFromInt(3899),
			SKU:         "NK-AJ4-MIL",
			Color:       "White / Black / Grey",
			Category:    "Sneakers",
			Sizes:       map[string]int{"UK7": 5, "UK8": 5, "UK9": 5},
			Images: []string{
				"https://images.unsplash.com/photo-1695627230462-811c7625121b?q=80&w=2000&auto=format&fit=crop",
				"https://images.unsplash.com/photo-1597045566677-8cf032ed6634?q=80&w=2000&auto=format&fit=crop",
			},
			CreatedAt: day(9),
		},
	}
}
