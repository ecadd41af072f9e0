package floriculture

import (
	"strconv"
	"time"

	"github.com/agrosuite/dashboard/internal/entity"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/form"
	"github.com/agrosuite/dashboard/internal/record"
	"github.com/agrosuite/dashboard/internal/render"
)

// Filters describes the filter parameters of the planting list
var Filters = filter.Schema{
	{Param: "status", Kind: filter.Equal, Fields: []string{"status"}},
	{Param: "greenhouse_id", Kind: filter.Equal, Fields: []string{"greenhouse_id"}},
	{Param: "date_from", Kind: filter.From, Fields: []string{"planting_date"}},
	{Param: "date_to", Kind: filter.To, Fields: []string{"planting_date"}},
	{Param: "search", Kind: filter.Contains, Fields: []string{"variety", "color"}},
}

// Samples returns the records displayed when the planting list cannot be loaded
func Samples() []Planting {
	return []Planting{
		{
			ID:              "1",
			Variety:         "Rosa Vendela",
			Color:           "Branca",
			GreenhouseID:    "1",
			GreenhouseName:  "Estufa 1",
			PlantingDate:    record.NewDate(2024, 2, 5),
			ExpectedHarvest: record.NewDate(2024, 5, 20),
			Quantity:        1200,
			Status:          StatusGrowing,
		},
		{
			ID:              "2",
			Variety:         "Gérbera",
			Color:           "Laranja",
			GreenhouseID:    "2",
			GreenhouseName:  "Estufa 2",
			PlantingDate:    record.NewDate(2024, 1, 15),
			ExpectedHarvest: record.NewDate(2024, 3, 30),
			Quantity:        800,
			Status:          StatusFlowering,
		},
		{
			ID:              "3",
			Variety:         "Crisântemo",
			Color:           "Amarelo",
			GreenhouseID:    "1",
			GreenhouseName:  "Estufa 1",
			PlantingDate:    record.NewDate(2023, 11, 8),
			ExpectedHarvest: record.NewDate(2024, 2, 1),
			Quantity:        1500,
			Status:          StatusHarvested,
		},
	}
}

// Plantings describes the planting list
func Plantings() *entity.Definition[Planting] {
	return &entity.Definition[Planting]{
		Domain:   "floriculture",
		Name:     "plantings",
		Title:    "Plantios",
		Singular: "Plantio",
		Resource: "/api/floriculture/plantings",
		Schema:   Filters,
		FilterFields: []form.Field{
			entity.Text("search", "Variedade ou cor"),
			entity.Option("status", "Situação", StatusPlanted, StatusGrowing, StatusFlowering, StatusHarvested),
			entity.Text("greenhouse_id", "Estufa"),
			entity.Date("date_from", "Plantio a partir de"),
			entity.Date("date_to", "Plantio até"),
		},
		View: render.View[Planting]{
			Title:  "Plantios",
			Layout: render.LayoutCards,
			Columns: []render.Column[Planting]{
				{Header: "Variedade", Value: func(_ *render.Formatter, p Planting) string { return p.Variety }},
				{Header: "Cor", Value: func(_ *render.Formatter, p Planting) string { return p.Color }},
				{Header: "Estufa", Value: func(_ *render.Formatter, p Planting) string { return p.GreenhouseName }},
				{Header: "Plantio", Value: func(f *render.Formatter, p Planting) string { return f.Date(p.PlantingDate) }},
				{Header: "Colheita prevista", Value: func(f *render.Formatter, p Planting) string { return f.Date(p.ExpectedHarvest) }},
				{Header: "Dias para colheita", Numeric: true, Value: func(_ *render.Formatter, p Planting) string {
					days, ok := p.DaysToHarvest(time.Now())
					if !ok || p.Status == StatusHarvested {
						return ""
					}
					return strconv.Itoa(days)
				}},
				{Header: "Quantidade", Numeric: true, Value: func(f *render.Formatter, p Planting) string { return f.Number(p.Quantity, 0) }},
			},
			ID:     func(p Planting) string { return p.ID.String() },
			Status: func(p Planting) string { return p.Status },
			Empty:  "Nenhum plantio encontrado.",
		},
		StatusActions: []entity.StatusAction{
			{Name: "harvest", Label: "Colher", Status: StatusHarvested, From: []string{StatusGrowing, StatusFlowering}},
		},
		Samples:     Samples(),
		IDField:     "id",
		StatusField: "status",
	}
}
