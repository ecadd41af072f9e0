package dairy

import (
	"math"
	"sort"

	"github.com/agrosuite/dashboard/internal/record"
)

// TotalDataset is the label of the dataset summing up every shift
const TotalDataset = "Total"

// ChartData is the input of the external chart library
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset represents one series of the chart
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// Summary represents the key figures of a set of milking records
type Summary struct {
	Records       int     `json:"records"`
	Days          int     `json:"days"`
	TotalLiters   float64 `json:"total_liters"`
	AverageLiters float64 `json:"average_liters_per_day"`
	AverageFat    float64 `json:"average_fat_percentage"`
	BestDay       string  `json:"best_day"`
	BestDayLiters float64 `json:"best_day_liters"`
}

// BuildChart aggregates milking records into litres per day: one dataset per shift followed by the daily total.
// Days are ordered chronologically; records without a date are skipped. Shifts outside the known ones only
// count towards the total.
func BuildChart(rows []Production) ChartData {
	perDay := make(map[string]map[string]float64)
	for _, row := range rows {
		if row.Date.IsZero() {
			continue
		}
		day := row.Date.Format(record.DateLayout)
		if perDay[day] == nil {
			perDay[day] = make(map[string]float64)
		}
		perDay[day][row.Shift] += row.Liters.Float()
		perDay[day][TotalDataset] += row.Liters.Float()
	}

	labels := make([]string, 0, len(perDay))
	for day := range perDay {
		labels = append(labels, day)
	}
	sort.Strings(labels)

	names := append(append([]string{}, Shifts...), TotalDataset)
	datasets := make([]Dataset, 0, len(names))
	for _, name := range names {
		data := make([]float64, 0, len(labels))
		for _, day := range labels {
			data = append(data, round(perDay[day][name]))
		}
		datasets = append(datasets, Dataset{Label: name, Data: data})
	}
	return ChartData{
		Labels:   labels,
		Datasets: datasets,
	}
}

// Summarize calculates the key figures of milking records
func Summarize(rows []Production) Summary {
	chart := BuildChart(rows)
	summary := Summary{
		Records: len(rows),
		Days:    len(chart.Labels),
	}

	fatSum, fatCount := 0.0, 0
	for _, row := range rows {
		summary.TotalLiters += row.Liters.Float()
		if row.FatPercentage > 0 {
			fatSum += row.FatPercentage.Float()
			fatCount++
		}
	}
	summary.TotalLiters = round(summary.TotalLiters)
	if fatCount > 0 {
		summary.AverageFat = round(fatSum / float64(fatCount))
	}

	datedLiters := 0.0
	for i, liters := range chart.Datasets[len(chart.Datasets)-1].Data {
		datedLiters += liters
		if liters > summary.BestDayLiters {
			summary.BestDay = chart.Labels[i]
			summary.BestDayLiters = liters
		}
	}
	if summary.Days > 0 {
		summary.AverageLiters = round(datedLiters / float64(summary.Days))
	}
	return summary
}

func round(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return math.Round(value*100) / 100
}
