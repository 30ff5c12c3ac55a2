package simulate

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"lastmile/internal/config"
	"lastmile/internal/models"
)

// Generator synthesizes order records from a single seeded random stream.
// Rows are independent, but the draw order within a row is fixed so a seed
// always reproduces the same dataset.
type Generator struct {
	cfg   config.GeneratorConfig
	start time.Time
	end   time.Time
	rng   *rand.Rand
	zips  ZipCodes

	primeCarriers    carrierTable
	standardCarriers carrierTable
}

// NewGenerator validates the configuration and builds the carrier tables.
func NewGenerator(cfg config.GeneratorConfig, zips ZipCodes) (*Generator, error) {
	start, end, err := cfg.DateBounds()
	if err != nil {
		return nil, err
	}
	if cfg.Orders <= 0 {
		return nil, fmt.Errorf("generator.orders must be positive, got %d", cfg.Orders)
	}
	if cfg.MaxDelayDays < 1 {
		return nil, fmt.Errorf("generator.max_delay_days must be at least 1, got %d", cfg.MaxDelayDays)
	}

	prime, err := newCarrierTable(cfg.PrimeCarriers)
	if err != nil {
		return nil, fmt.Errorf("invalid generator.prime_carriers: %w", err)
	}
	standard, err := newCarrierTable(cfg.StandardCarriers)
	if err != nil {
		return nil, fmt.Errorf("invalid generator.standard_carriers: %w", err)
	}

	return &Generator{
		cfg:              cfg,
		start:            start,
		end:              end,
		rng:              rand.New(rand.NewSource(cfg.Seed)),
		zips:             zips,
		primeCarriers:    prime,
		standardCarriers: standard,
	}, nil
}

// Generate produces the configured number of order records.
func (g *Generator) Generate() []models.OrderRecord {
	records := make([]models.OrderRecord, 0, g.cfg.Orders)
	for i := 0; i < g.cfg.Orders; i++ {
		records = append(records, g.nextOrder(i))
	}
	return records
}

func (g *Generator) nextOrder(i int) models.OrderRecord {
	orderID := fmt.Sprintf("ORD-%07d", i)
	customerID := fmt.Sprintf("CUST-%05d", 10000+g.rng.Intn(90000))
	orderDate := g.randomDate()
	isPrime := g.rng.Float64() < g.cfg.PrimeRatio

	deliveryDays := g.deliveryDays(isPrime)
	expected := orderDate.AddDate(0, 0, deliveryDays)
	actual := expected

	delayProb := g.cfg.StandardDelayProbability
	if isPrime {
		delayProb = g.cfg.PrimeDelayProbability
	}
	if g.rng.Float64() < delayProb {
		actual = actual.AddDate(0, 0, 1+g.rng.Intn(g.cfg.MaxDelayDays))
	}

	carrier := g.pickCarrier(isPrime)

	return models.OrderRecord{
		OrderID:              orderID,
		CustomerID:           customerID,
		OrderDate:            orderDate,
		IsPrimeMember:        isPrime,
		ExpectedDeliveryDate: expected,
		ActualDeliveryDate:   actual,
		DeliveryStatus:       models.StatusFor(expected, actual),
		Carrier:              carrier,
		DeliveryCost:         g.deliveryCost(carrier, isPrime),
		ProductID:            fmt.Sprintf("PROD-%03d", 100+g.rng.Intn(900)),
		OrderQuantity:        1 + g.rng.Intn(5),
		DestinationZipCode:   g.pickZip(),
	}
}

// randomDate draws a day between the bounds, both endpoints included.
func (g *Generator) randomDate() time.Time {
	span := int(g.end.Sub(g.start).Hours() / 24)
	return g.start.AddDate(0, 0, g.rng.Intn(span+1))
}

// deliveryDays draws from the tier's normal distribution, rounds to whole
// days and floors at one day.
func (g *Generator) deliveryDays(isPrime bool) int {
	mean, std := g.cfg.StandardDeliveryAvgDays, g.cfg.StandardDeliveryStdDev
	if isPrime {
		mean, std = g.cfg.PrimeDeliveryAvgDays, g.cfg.PrimeDeliveryStdDev
	}
	days := int(math.Round(g.rng.NormFloat64()*std + mean))
	if days < 1 {
		days = 1
	}
	return days
}

func (g *Generator) pickCarrier(isPrime bool) string {
	if isPrime {
		return g.primeCarriers.pick(g.rng)
	}
	return g.standardCarriers.pick(g.rng)
}

// deliveryCost applies the carrier base rate, the prime premium and a
// uniform ±10% jitter, rounded to cents.
func (g *Generator) deliveryCost(carrier string, isPrime bool) float64 {
	cost := g.cfg.BaseThirdPartyCost
	if carrier == models.CarrierAMZL {
		cost = g.cfg.BaseAMZLCost
	}
	if isPrime {
		cost *= g.cfg.PrimeCostPremium
	}
	cost *= 0.9 + 0.2*g.rng.Float64()
	return math.Round(cost*100) / 100
}

// pickZip draws from the reference set, or synthesizes a 5-digit code when
// the set is empty.
func (g *Generator) pickZip() string {
	if g.zips.Empty() {
		return fmt.Sprintf("%05d", g.rng.Intn(100000))
	}
	return g.zips.Codes[g.rng.Intn(len(g.zips.Codes))]
}

// carrierTable is a cumulative-weight categorical distribution over the
// configured carrier entries, in their declared order.
type carrierTable struct {
	names []string
	cum   []float64
	total float64
}

func newCarrierTable(weights []config.CarrierWeight) (carrierTable, error) {
	if len(weights) == 0 {
		return carrierTable{}, fmt.Errorf("no carriers configured")
	}

	var t carrierTable
	for _, cw := range weights {
		if cw.Name == "" {
			return carrierTable{}, fmt.Errorf("carrier with empty name")
		}
		if cw.Weight < 0 {
			return carrierTable{}, fmt.Errorf("carrier %q has negative weight %v", cw.Name, cw.Weight)
		}
		t.total += cw.Weight
		t.names = append(t.names, cw.Name)
		t.cum = append(t.cum, t.total)
	}
	if t.total <= 0 {
		return carrierTable{}, fmt.Errorf("carrier weights sum to zero")
	}
	return t, nil
}

func (t carrierTable) pick(rng *rand.Rand) string {
	x := rng.Float64() * t.total
	for i, c := range t.cum {
		if x < c {
			return t.names[i]
		}
	}
	return t.names[len(t.names)-1]
}
