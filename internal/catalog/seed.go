package catalog

import "github.com/pkordes/trip-builder/internal/domain"

// seedAttractions is the built-in attraction list. Costs are in Rupiah,
// durations in minutes.
var seedAttractions = []domain.Activity{
	{
		ID:          "attr-1",
		Name:        "Borobudur Temple",
		Location:    domain.Coordinates{Lat: -7.6079, Lng: 110.2038},
		Address:     "Jl. Badrawati, Kw. Candi Borobudur, Magelang, Central Java",
		Cost:        350000,
		Duration:    180,
		Category:    domain.CategoryCulture,
		Description: "The world's largest Buddhist temple and one of Indonesia's most significant cultural landmarks.",
		ImageURL:    "https://images.unsplash.com/photo-1588668214407-6ea9a6d8c272",
	},
	{
		ID:          "attr-2",
		Name:        "Gili Islands Snorkeling",
		Location:    domain.Coordinates{Lat: -8.3486, Lng: 116.0361},
		Address:     "Gili Islands, Lombok, West Nusa Tenggara",
		Cost:        450000,
		Duration:    240,
		Category:    domain.CategoryAdventure,
		Description: "Explore vibrant coral reefs and swim with sea turtles in the crystal clear waters around the Gili Islands.",
		ImageURL:    "https://images.unsplash.com/photo-1530541930197-ff16ac917f7f",
		IsFlexible:  true,
	},
	{
		ID:          "attr-3",
		Name:        "Ubud Monkey Forest",
		Location:    domain.Coordinates{Lat: -8.5188, Lng: 115.2588},
		Address:     "Jl. Monkey Forest, Ubud, Bali",
		Cost:        80000,
		Duration:    120,
		Category:    domain.CategoryAdventure,
		Description: "A natural sanctuary and temple complex with more than 700 monkeys and 186 species of plants.",
		ImageURL:    "https://images.unsplash.com/photo-1555454762-22f6fc247a25",
		IsFlexible:  true,
	},
	{
		ID:          "attr-4",
		Name:        "Pasar Baru Food Tour",
		Location:    domain.Coordinates{Lat: -6.1687, Lng: 106.8316},
		Address:     "Pasar Baru, Central Jakarta",
		Cost:        250000,
		Duration:    180,
		Category:    domain.CategoryFood,
		Description: "Sample authentic Indonesian cuisine at one of Jakarta's oldest and most vibrant markets.",
		ImageURL:    "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4",
		IsFlexible:  true,
	},
	{
		ID:          "attr-5",
		Name:        "Mount Bromo Sunrise Tour",
		Location:    domain.Coordinates{Lat: -7.9425, Lng: 112.9530},
		Address:     "Bromo Tengger Semeru National Park, East Java",
		Cost:        800000,
		Duration:    300,
		Category:    domain.CategoryAdventure,
		Description: "Witness a breathtaking sunrise over the volcanic landscape of Mount Bromo.",
		ImageURL:    "https://images.unsplash.com/photo-1518002054494-3a6f94352e9e",
	},
	{
		ID:          "attr-6",
		Name:        "Prambanan Temple Complex",
		Location:    domain.Coordinates{Lat: -7.7520, Lng: 110.4914},
		Address:     "Jl. Raya Solo - Yogyakarta No.16, Yogyakarta",
		Cost:        320000,
		Duration:    150,
		Category:    domain.CategoryCulture,
		Description: "A 9th-century Hindu temple compound dedicated to the Trimurti: Brahma, Vishnu, and Shiva.",
		ImageURL:    "https://images.unsplash.com/photo-1584810359583-96fc3448beaa",
	},
	{
		ID:          "attr-7",
		Name:        "Bali Cooking Class",
		Location:    domain.Coordinates{Lat: -8.4234, Lng: 115.3119},
		Address:     "Ubud, Bali",
		Cost:        550000,
		Duration:    240,
		Category:    domain.CategoryFood,
		Description: "Learn to prepare authentic Balinese dishes with fresh ingredients from local markets.",
		ImageURL:    "https://images.unsplash.com/photo-1507048331197-7d4ac70811cf",
		IsFlexible:  true,
	},
	{
		ID:          "attr-8",
		Name:        "Komodo National Park Tour",
		Location:    domain.Coordinates{Lat: -8.5500, Lng: 119.4883},
		Address:     "Komodo Island, East Nusa Tenggara",
		Cost:        1500000,
		Duration:    480,
		Category:    domain.CategoryAdventure,
		Description: "See the famous Komodo dragons in their natural habitat and snorkel in pristine waters.",
		ImageURL:    "https://images.unsplash.com/photo-1582379825148-f6bc6f111dc1",
	},
	{
		ID:          "attr-9",
		Name:        "Jakarta Historical Museum",
		Location:    domain.Coordinates{Lat: -6.1347, Lng: 106.8135},
		Address:     "Jl. Taman Fatahillah No.1, West Jakarta",
		Cost:        100000,
		Duration:    120,
		Category:    domain.CategoryCulture,
		Description: "Housed in the old city hall of Batavia, displays artifacts from Jakarta's colonial history.",
		ImageURL:    "https://images.unsplash.com/photo-1582555172866-f73bb12a2ab3",
		IsFlexible:  true,
	},
	{
		ID:          "attr-10",
		Name:        "Tegallalang Rice Terraces",
		Location:    domain.Coordinates{Lat: -8.4312, Lng: 115.2776},
		Address:     "Tegallalang, Gianyar, Bali",
		Cost:        50000,
		Duration:    120,
		Category:    domain.CategoryCulture,
		Description: "Dramatic terraced rice fields offering a timeless example of the Balinese cooperative irrigation system.",
		ImageURL:    "https://images.unsplash.com/photo-1525596662741-e94ff9f26de1",
		IsFlexible:  true,
	},
	{
		ID:          "attr-11",
		Name:        "Jimbaran Bay Seafood Dinner",
		Location:    domain.Coordinates{Lat: -8.7902, Lng: 115.1621},
		Address:     "Jimbaran Beach, Bali",
		Cost:        350000,
		Duration:    120,
		Category:    domain.CategoryFood,
		Description: "Enjoy freshly caught seafood prepared on open grills right on the beach as the sun sets.",
		ImageURL:    "https://images.unsplash.com/photo-1485963631004-f2f00b1d6606",
		IsFlexible:  true,
	},
	{
		ID:          "attr-12",
		Name:        "Tanjung Puting National Park",
		Location:    domain.Coordinates{Lat: -2.7639, Lng: 111.9500},
		Address:     "Central Kalimantan",
		Cost:        1200000,
		Duration:    480,
		Category:    domain.CategoryAdventure,
		Description: "Take a klotok boat tour to observe orangutans and other wildlife in their natural habitat.",
		ImageURL:    "https://images.unsplash.com/photo-1580917081106-aa1eeda513c1",
	},
}

// seedRegions is a closed region → attraction mapping. It stands in for a
// geographic query; there is no fuzzy matching.
var seedRegions = map[string][]string{
	"Bali":       {"attr-3", "attr-7", "attr-10", "attr-11"},
	"Jakarta":    {"attr-4", "attr-9"},
	"Yogyakarta": {"attr-1", "attr-6"},
	"Lombok":     {"attr-2"},
	"East Java":  {"attr-5"},
	"Komodo":     {"attr-8"},
	"Kalimantan": {"attr-12"},
}
