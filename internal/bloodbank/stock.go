package bloodbank

import "github.com/brianvoe/gofakeit/v7"

const (
	maxRandomBags = 50
	// emptyPercent is the chance, in percent, that a facility holds no bag of a given type.
	emptyPercent = 60
)

// RandomStock draws a stock for every blood type from faker: empty 60% of the time, otherwise
// 1 to 50 bags.
func RandomStock(faker *gofakeit.Faker) Stock {
	stock := make(Stock, len(AllBloodTypes))
	for _, bloodType := range AllBloodTypes {
		if faker.Number(1, 100) <= emptyPercent {
			stock[bloodType] = 0
			continue
		}
		stock[bloodType] = faker.Number(1, maxRandomBags)
	}

	return stock
}

// WithRandomStock returns copies of facilities whose stock is drawn from a generator seeded with
// seed. A zero seed draws from a random source.
func WithRandomStock(seed uint64, facilities []Facility) []Facility {
	faker := gofakeit.New(seed)
	stocked := make([]Facility, len(facilities))
	for idx, facility := range facilities {
		facility.Stock = RandomStock(faker)
		stocked[idx] = facility
	}

	return stocked
}
