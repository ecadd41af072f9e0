package cattle

import (
	"github.com/agrosuite/dashboard/internal/entity"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/form"
	"github.com/agrosuite/dashboard/internal/record"
	"github.com/agrosuite/dashboard/internal/render"
)

// Filters describes the filter parameters of the animal list
var Filters = filter.Schema{
	{Param: "status", Kind: filter.Equal, Fields: []string{"status"}},
	{Param: "breed", Kind: filter.Equal, Fields: []string{"breed"}},
	{Param: "weight_min", Kind: filter.Min, Fields: []string{"current_weight"}},
	{Param: "weight_max", Kind: filter.Max, Fields: []string{"current_weight"}},
	{Param: "date_from", Kind: filter.From, Fields: []string{"entry_date"}},
	{Param: "date_to", Kind: filter.To, Fields: []string{"entry_date"}},
	{Param: "search", Kind: filter.Contains, Fields: []string{"official_id", "name"}},
}

// Samples returns the records displayed when the animal list cannot be loaded
func Samples() []Animal {
	return []Animal{
		{
			ID:            "1",
			OfficialID:    "BR-2024-0001",
			Name:          "Mimosa",
			Breed:         "Nelore",
			Sex:           "F",
			BirthDate:     record.NewDate(2022, 8, 14),
			EntryDate:     record.NewDate(2024, 1, 10),
			EntryWeight:   280,
			CurrentWeight: 412.5,
			Status:        StatusFattening,
			Lot:           "L-03",
			PastureName:   "Pasto do Açude",
		},
		{
			ID:            "2",
			OfficialID:    "BR-2023-0107",
			Name:          "Trovão",
			Breed:         "Angus",
			Sex:           "M",
			BirthDate:     record.NewDate(2021, 11, 2),
			EntryDate:     record.NewDate(2023, 3, 22),
			EntryWeight:   310,
			CurrentWeight: 540,
			Status:        StatusSold,
			Lot:           "L-01",
			PastureName:   "Retiro Norte",
		},
	}
}

// Animals describes the animal list
func Animals() *entity.Definition[Animal] {
	return &entity.Definition[Animal]{
		Domain:   "cattle",
		Name:     "animals",
		Title:    "Rebanho",
		Singular: "Animal",
		Resource: "/api/cattle/animals",
		Schema:   Filters,
		FilterFields: []form.Field{
			entity.Text("search", "Brinco ou nome"),
			entity.Option("status", "Situação", StatusFattening, StatusRearing, StatusSold, StatusDead),
			entity.Option("breed", "Raça", "Nelore", "Angus", "Brahman", "Girolando", "Senepol"),
			entity.Number("weight_min", "Peso mínimo"),
			entity.Number("weight_max", "Peso máximo"),
			entity.Date("date_from", "Entrada a partir de"),
			entity.Date("date_to", "Entrada até"),
		},
		View: render.View[Animal]{
			Title:  "Rebanho",
			Layout: render.LayoutTable,
			Columns: []render.Column[Animal]{
				{Header: "Brinco", Value: func(_ *render.Formatter, a Animal) string { return a.OfficialID }},
				{Header: "Nome", Value: func(_ *render.Formatter, a Animal) string { return a.Name }},
				{Header: "Raça", Value: func(_ *render.Formatter, a Animal) string { return a.Breed }},
				{Header: "Entrada", Value: func(f *render.Formatter, a Animal) string { return f.Date(a.EntryDate) }},
				{Header: "Peso atual (kg)", Numeric: true, Value: func(f *render.Formatter, a Animal) string { return f.Number(a.CurrentWeight, 1) }},
				{Header: "Ganho (kg)", Numeric: true, Value: func(f *render.Formatter, a Animal) string { return f.Number(a.WeightGain(), 1) }},
				{Header: "Situação", Value: func(_ *render.Formatter, a Animal) string { return a.Status }},
				{Header: "Pasto", Value: func(_ *render.Formatter, a Animal) string { return a.PastureName }},
			},
			ID:     func(a Animal) string { return a.ID.String() },
			Status: func(a Animal) string { return a.Status },
			Empty:  "Nenhum animal encontrado.",
		},
		Samples:     Samples(),
		IDField:     "id",
		StatusField: "status",
	}
}
