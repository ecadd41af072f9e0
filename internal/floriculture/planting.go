package floriculture

import (
	"time"

	"github.com/agrosuite/dashboard/internal/record"
)

// Planting statuses
const (
	StatusPlanted   = "Plantado"
	StatusGrowing   = "Em Crescimento"
	StatusFlowering = "Em Floração"
	StatusHarvested = "Colhido"
)

// Planting represents a batch of flowers planted in a greenhouse
type Planting struct {
	ID              record.ID     `json:"id"`
	Variety         string        `json:"variety"`
	Color           string        `json:"color"`
	GreenhouseID    record.ID     `json:"greenhouse_id"`
	GreenhouseName  string        `json:"greenhouse_name"`
	PlantingDate    record.Date   `json:"planting_date"`
	ExpectedHarvest record.Date   `json:"expected_harvest"`
	Quantity        record.Number `json:"quantity"`
	Status          string        `json:"status"`
}

// DaysToHarvest returns the amount of days left until the expected harvest; it is negative for overdue
// harvests and false when no harvest date is known
func (planting Planting) DaysToHarvest(now time.Time) (int, bool) {
	if planting.ExpectedHarvest.IsZero() {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(planting.ExpectedHarvest.Sub(today).Hours() / 24), true
}

// PlantingForm represents the create and update payload of a planting
type PlantingForm struct {
	Variety         string        `json:"variety" label:"Variedade" required:"true"`
	Color           string        `json:"color" label:"Cor"`
	GreenhouseID    string        `json:"greenhouse_id" label:"Estufa" required:"true"`
	PlantingDate    record.Date   `json:"planting_date" label:"Plantio" required:"true"`
	ExpectedHarvest *record.Date  `json:"expected_harvest,omitempty" label:"Colheita prevista"`
	Quantity        record.Number `json:"quantity" label:"Quantidade" required:"true" min:"1"`
	Status          string        `json:"status" label:"Situação" required:"true" options:"Plantado|Em Crescimento|Em Floração|Colhido"`
}
