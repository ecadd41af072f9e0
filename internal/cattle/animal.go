package cattle

import (
	"github.com/agrosuite/dashboard/internal/record"
)

// Animal statuses
const (
	StatusFattening = "Em Engorda"
	StatusRearing   = "Em Recria"
	StatusSold      = "Vendido"
	StatusDead      = "Morto"
)

// Animal represents a single head of cattle
type Animal struct {
	ID            record.ID     `json:"id"`
	OfficialID    string        `json:"official_id"`
	Name          string        `json:"name"`
	Breed         string        `json:"breed"`
	Sex           string        `json:"sex"`
	BirthDate     record.Date   `json:"birth_date"`
	EntryDate     record.Date   `json:"entry_date"`
	EntryWeight   record.Number `json:"entry_weight"`
	CurrentWeight record.Number `json:"current_weight"`
	Status        string        `json:"status"`
	Lot           string        `json:"lot"`
	PastureName   string        `json:"pasture_name"`
}

// WeightGain returns the weight gained since the animal entered the farm
func (animal Animal) WeightGain() record.Number {
	if animal.EntryWeight <= 0 || animal.CurrentWeight <= 0 {
		return 0
	}
	return animal.CurrentWeight - animal.EntryWeight
}

// AnimalForm represents the create and update payload of an animal
type AnimalForm struct {
	OfficialID    string         `json:"official_id" label:"Brinco" required:"true"`
	Name          string         `json:"name" label:"Nome"`
	Breed         string         `json:"breed" label:"Raça" required:"true" options:"Nelore|Angus|Brahman|Girolando|Senepol"`
	Sex           string         `json:"sex" label:"Sexo" required:"true" options:"M|F"`
	BirthDate     *record.Date   `json:"birth_date,omitempty" label:"Nascimento"`
	EntryDate     record.Date    `json:"entry_date" label:"Entrada" required:"true"`
	EntryWeight   record.Number  `json:"entry_weight" label:"Peso de entrada (kg)" required:"true" min:"1" max:"2000"`
	CurrentWeight *record.Number `json:"current_weight,omitempty" label:"Peso atual (kg)" min:"1" max:"2000"`
	Status        string         `json:"status" label:"Situação" required:"true" options:"Em Engorda|Em Recria|Vendido|Morto"`
	Lot           string         `json:"lot" label:"Lote"`
	PastureName   string         `json:"pasture_name" label:"Pasto"`
}
