package billing

import (
	"math"
	"math/rand"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Simulated-online policy: between 60% and 75% of the work-order items
// receive a quantity scaled to 10-125% of the original, the rest bill zero,
// and 1-10 extra items are synthesized. Deterministic for a fixed seed.

var extraCatalogue = []struct {
	description string
	unit        string
	minRate     int64
	maxRate     int64
}{
	{"Dismantling of existing structure", "Cum", 150, 900},
	{"Providing and laying cement concrete 1:2:4", "Cum", 4500, 7200},
	{"Earthwork in excavation in hard soil", "Cum", 120, 450},
	{"Supplying and fixing MS grill", "Kg", 80, 160},
	{"Providing weep holes with PVC pipe", "Each", 45, 120},
	{"Cement plaster 1:4, 12mm thick", "Sqm", 180, 340},
	{"Painting two coats with synthetic enamel", "Sqm", 60, 140},
	{"Carriage of materials by mechanical transport", "MT", 200, 600},
}

func simulateOnline(workOrder []domain.WorkOrderItem, seed int64) ([]domain.BillQuantityItem, []domain.ExtraItem) {
	rng := rand.New(rand.NewSource(seed))

	n := len(workOrder)
	var quantities []domain.BillQuantityItem
	if n > 0 {
		lo := int(math.Ceil(0.60 * float64(n)))
		hi := int(math.Floor(0.75 * float64(n)))
		// For 1- and 2-item work orders no integer count falls inside the
		// 60-75% band; the count clamps to ceil(0.60n), so every item gets a
		// quantity rather than none.
		if hi < lo {
			hi = lo
		}
		count := lo + rng.Intn(hi-lo+1)

		perm := rng.Perm(n)
		quantities = make([]domain.BillQuantityItem, 0, count)
		for _, idx := range perm[:count] {
			item := workOrder[idx]
			// Scale factor in [0.100, 1.250] with three exact decimals so the
			// assigned quantity never drifts out of bounds through rounding.
			factor := decimal.NewFromInt(rng.Int63n(1151) + 100).Div(decimal.NewFromInt(1000))
			quantities = append(quantities, domain.BillQuantityItem{
				Code:             item.Code,
				MeasuredQuantity: item.OriginalQuantity.Mul(factor),
			})
		}
	}

	extraCount := rng.Intn(10) + 1
	extras := make([]domain.ExtraItem, 0, extraCount)
	for i := 0; i < extraCount; i++ {
		entry := extraCatalogue[rng.Intn(len(extraCatalogue))]
		rate := decimal.NewFromInt(entry.minRate + rng.Int63n(entry.maxRate-entry.minRate+1))
		qty := decimal.NewFromInt(rng.Int63n(4900) + 100).Div(decimal.NewFromInt(100))
		extras = append(extras, domain.ExtraItem{
			Description: entry.description,
			Unit:        entry.unit,
			Quantity:    qty,
			Rate:        rate,
			Source:      domain.ExtraItemGenerated,
		})
	}

	return quantities, extras
}
