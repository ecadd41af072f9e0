package dairy

import (
	"github.com/agrosuite/dashboard/internal/entity"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/form"
	"github.com/agrosuite/dashboard/internal/record"
	"github.com/agrosuite/dashboard/internal/render"
)

// Filters describes the filter parameters of the production list
var Filters = filter.Schema{
	{Param: "shift", Kind: filter.Equal, Fields: []string{"shift"}},
	{Param: "date_from", Kind: filter.From, Fields: []string{"date"}},
	{Param: "date_to", Kind: filter.To, Fields: []string{"date"}},
	{Param: "search", Kind: filter.Contains, Fields: []string{"animal_name"}},
}

// Samples returns the records displayed when the production list cannot be loaded
func Samples() []Production {
	return []Production{
		{ID: "1", AnimalName: "Mimosa", Date: record.NewDate(2024, 4, 1), Shift: ShiftMorning, Liters: 14.2, FatPercentage: 3.8},
		{ID: "2", AnimalName: "Mimosa", Date: record.NewDate(2024, 4, 1), Shift: ShiftAfternoon, Liters: 11.5, FatPercentage: 3.9},
		{ID: "3", AnimalName: "Estrela", Date: record.NewDate(2024, 4, 1), Shift: ShiftMorning, Liters: 18.4, FatPercentage: 3.5},
		{ID: "4", AnimalName: "Mimosa", Date: record.NewDate(2024, 4, 2), Shift: ShiftMorning, Liters: 13.9, FatPercentage: 3.7},
		{ID: "5", AnimalName: "Estrela", Date: record.NewDate(2024, 4, 2), Shift: ShiftAfternoon, Liters: 16.1, FatPercentage: 3.6},
		{ID: "6", AnimalName: "Estrela", Date: record.NewDate(2024, 4, 2), Shift: ShiftNight, Liters: 6.3, FatPercentage: 4.1},
	}
}

// Productions describes the production list
func Productions() *entity.Definition[Production] {
	return &entity.Definition[Production]{
		Domain:   "dairy",
		Name:     "productions",
		Title:    "Produção de leite",
		Singular: "Ordenha",
		Resource: "/api/dairy/productions",
		Schema:   Filters,
		FilterFields: []form.Field{
			entity.Text("search", "Animal"),
			entity.Option("shift", "Turno", Shifts...),
			entity.Date("date_from", "A partir de"),
			entity.Date("date_to", "Até"),
		},
		View: render.View[Production]{
			Title:  "Produção de leite",
			Layout: render.LayoutTable,
			Columns: []render.Column[Production]{
				{Header: "Data", Value: func(f *render.Formatter, p Production) string { return f.Date(p.Date) }},
				{Header: "Animal", Value: func(_ *render.Formatter, p Production) string { return p.AnimalName }},
				{Header: "Turno", Value: func(_ *render.Formatter, p Production) string { return p.Shift }},
				{Header: "Litros", Numeric: true, Value: func(f *render.Formatter, p Production) string { return f.Number(p.Liters, 1) }},
				{Header: "Gordura", Numeric: true, Value: func(f *render.Formatter, p Production) string { return f.Percent(p.FatPercentage) }},
			},
			ID:    func(p Production) string { return p.ID.String() },
			Empty: "Nenhuma ordenha registrada.",
		},
		Samples: Samples(),
		IDField: "id",
	}
}
