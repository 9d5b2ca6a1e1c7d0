package paging_test

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ncobase/relaypage/data/memory"
	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
)

type starship struct {
	ID            int64  `bson:"_id"`
	Model         string `bson:"model"`
	StarshipClass string `bson:"starshipClass"`
}

type product struct {
	ID    int64   `bson:"_id"`
	Name  string  `bson:"name"`
	Type  string  `bson:"type"`
	Price float64 `bson:"price"`
}

var (
	starshipClasses = []string{"Corvette", "Deep Space Mobile Battlestation", "Starfighter", "Star Destroyer", "Transport", "Light freighter", "Assault ship"}
	foodTypes       = []string{"fruit", "vegetable", "bakery"}
	otherTypes      = []string{"toys", "garden", "tools", "books"}
)

// starships returns 36 ships whose classes repeat, inserted out of id order.
func starships() []starship {
	ships := make([]starship, 0, 36)
	for i := 0; i < 36; i++ {
		id := int64((i*11)%36 + 1)
		ships = append(ships, starship{
			ID:            id,
			Model:         fmt.Sprintf("model-%02d", id),
			StarshipClass: starshipClasses[int(id)%len(starshipClasses)],
		})
	}
	return ships
}

// products returns 300 products, 102 of which are food, with repeated prices.
func products() []product {
	items := make([]product, 0, 300)
	for i := 0; i < 300; i++ {
		p := product{
			ID:    int64(i + 1),
			Name:  fmt.Sprintf("product-%03d", i+1),
			Price: float64((i*37)%89) + 0.5,
		}
		if i%50 < 17 {
			p.Type = foodTypes[i%len(foodTypes)]
		} else {
			p.Type = otherTypes[i%len(otherTypes)]
		}
		items = append(items, p)
	}
	return items
}

var foodFilter = query.In("type", foodTypes)

func starshipStore() *memory.Store[starship] { return memory.New(starships()) }

func productStore() *memory.Store[product] { return memory.New(products()) }

// starshipsRef is every ship sorted by (starshipClass, _id) ascending.
func starshipsRef() []starship {
	ref := starships()
	slices.SortFunc(ref, func(a, b starship) int {
		if c := strings.Compare(a.StarshipClass, b.StarshipClass); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return ref
}

// foodRef is every food product sorted by (price, _id) descending.
func foodRef() []product {
	var ref []product
	for _, p := range products() {
		if slices.Contains(foodTypes, p.Type) {
			ref = append(ref, p)
		}
	}
	slices.SortFunc(ref, func(a, b product) int {
		switch {
		case a.Price > b.Price:
			return -1
		case a.Price < b.Price:
			return 1
		}
		return int(b.ID - a.ID)
	})
	return ref
}

func starshipOpts() *paging.Options[starship, starship] {
	return &paging.Options[starship, starship]{CursorField: "starshipClass"}
}

func foodOpts() *paging.Options[product, product] {
	return &paging.Options[product, product]{CursorField: "price", Direction: paging.Descending}
}

func intPtr(n int) *int { return &n }
