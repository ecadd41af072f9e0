package dairy

import (
	"github.com/agrosuite/dashboard/internal/record"
)

// Milking shifts
const (
	ShiftMorning   = "Manhã"
	ShiftAfternoon = "Tarde"
	ShiftNight     = "Noite"
)

// Shifts lists the milking shifts in chart order
var Shifts = []string{ShiftMorning, ShiftAfternoon, ShiftNight}

// Production represents the milk yield of one animal in one milking
type Production struct {
	ID            record.ID     `json:"id"`
	AnimalName    string        `json:"animal_name"`
	Date          record.Date   `json:"date"`
	Shift         string        `json:"shift"`
	Liters        record.Number `json:"liters"`
	FatPercentage record.Number `json:"fat_percentage"`
}

// ProductionForm represents the create and update payload of a milking record
type ProductionForm struct {
	AnimalName    string         `json:"animal_name" label:"Animal" required:"true"`
	Date          record.Date    `json:"date" label:"Data" required:"true"`
	Shift         string         `json:"shift" label:"Turno" required:"true" options:"Manhã|Tarde|Noite"`
	Liters        record.Number  `json:"liters" label:"Litros" required:"true" min:"0" max:"100"`
	FatPercentage *record.Number `json:"fat_percentage,omitempty" label:"Gordura (%)" min:"0" max:"15"`
}
