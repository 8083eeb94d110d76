package generators

import (
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/sampling"
)

// CustomerGenerator produces the customer table.
type CustomerGenerator struct {
	cfg       *config.Config
	rng       *rand.Rand
	faker     *gofakeit.Faker
	validator *models.ModelValidator
}

// NewCustomerGenerator returns a customer generator drawing from rng and
// faker.
func NewCustomerGenerator(cfg *config.Config, rng *rand.Rand, faker *gofakeit.Faker) *CustomerGenerator {
	return &CustomerGenerator{
		cfg:       cfg,
		rng:       rng,
		faker:     faker,
		validator: models.NewModelValidator(),
	}
}

// Generate produces cfg.UniqueCustomers customers with sequential ids,
// synthetic PII, and countries drawn from the configured distribution.
func (g *CustomerGenerator) Generate() ([]models.Customer, []string) {
	customers := make([]models.Customer, 0, g.cfg.UniqueCustomers)
	var violations []string

	for i := 0; i < g.cfg.UniqueCustomers; i++ {
		customer := models.Customer{
			ID:      i + 1,
			Name:    g.faker.Name(),
			Email:   g.faker.Email(),
			Phone:   g.faker.Phone(),
			Country: sampling.WeightedChoice(g.rng, g.cfg.Countries),
		}
		for _, msg := range g.validator.ValidateCustomer(&customer) {
			violations = append(violations, "customer "+customer.Name+": "+msg)
		}
		customers = append(customers, customer)
	}

	return customers, violations
}

// CountryShares returns the percentage of customers per country.
func CountryShares(customers []models.Customer) map[string]float64 {
	if len(customers) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for i := range customers {
		counts[customers[i].Country]++
	}
	shares := make(map[string]float64, len(counts))
	for country, n := range counts {
		shares[country] = float64(n) / float64(len(customers)) * 100
	}
	return shares
}
