package landscaping

import (
	"github.com/agrosuite/dashboard/internal/record"
)

// Shared statuses
const (
	StatusActive   = "Ativo"
	StatusInactive = "Inativo"
)

// Client represents a landscaping customer
type Client struct {
	ID       record.ID `json:"id"`
	Name     string    `json:"name"`
	Document string    `json:"document"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	City     string    `json:"city"`
	Status   string    `json:"status"`
}

// ClientForm represents the create and update payload of a client
type ClientForm struct {
	Name     string `json:"name" label:"Nome" required:"true"`
	Document string `json:"document" label:"CPF/CNPJ" required:"true"`
	Phone    string `json:"phone" label:"Telefone"`
	Email    string `json:"email" label:"E-mail" input:"email"`
	City     string `json:"city" label:"Cidade"`
	Status   string `json:"status" label:"Situação" required:"true" options:"Ativo|Inativo"`
}

// Service represents an entry of the service catalogue
type Service struct {
	ID        record.ID     `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Unit      string        `json:"unit"`
	UnitPrice record.Number `json:"unit_price"`
	Status    string        `json:"status"`
}

// ServiceForm represents the create and update payload of a service
type ServiceForm struct {
	Name      string        `json:"name" label:"Nome" required:"true"`
	Category  string        `json:"category" label:"Categoria" required:"true" options:"Plantio|Poda|Gramado|Irrigação|Limpeza"`
	Unit      string        `json:"unit" label:"Unidade" required:"true" options:"m²|unidade|hora|visita"`
	UnitPrice record.Number `json:"unit_price" label:"Preço unitário" required:"true" min:"0"`
	Status    string        `json:"status" label:"Situação" required:"true" options:"Ativo|Inativo"`
}

// Project statuses, in kanban order
const (
	StatusPlanning   = "Planejamento"
	StatusInProgress = "Em Andamento"
	StatusDone       = "Concluído"
)

// Project represents a landscaping project
type Project struct {
	ID         record.ID     `json:"id"`
	Name       string        `json:"name"`
	ClientName string        `json:"client_name"`
	Status     string        `json:"status"`
	StartDate  record.Date   `json:"start_date"`
	EndDate    record.Date   `json:"end_date"`
	Budget     record.Number `json:"budget"`
}

// ProjectForm represents the create and update payload of a project
type ProjectForm struct {
	Name       string        `json:"name" label:"Nome" required:"true"`
	ClientName string        `json:"client_name" label:"Cliente" required:"true"`
	Status     string        `json:"status" label:"Situação" required:"true" options:"Planejamento|Em Andamento|Concluído"`
	StartDate  record.Date   `json:"start_date" label:"Início" required:"true"`
	EndDate    *record.Date  `json:"end_date,omitempty" label:"Término"`
	Budget     record.Number `json:"budget" label:"Orçamento" min:"0"`
}

// Maintenance statuses
const (
	StatusScheduled = "Agendada"
	StatusCompleted = "Concluída"
	StatusCanceled  = "Cancelada"
)

// Maintenance represents a scheduled maintenance visit of a project
type Maintenance struct {
	ID            record.ID     `json:"id"`
	ProjectName   string        `json:"project_name"`
	Description   string        `json:"description"`
	ScheduledDate record.Date   `json:"scheduled_date"`
	Status        string        `json:"status"`
	Cost          record.Number `json:"cost"`
}

// MaintenanceForm represents the create and update payload of a maintenance visit
type MaintenanceForm struct {
	ProjectName   string        `json:"project_name" label:"Projeto" required:"true"`
	Description   string        `json:"description" label:"Descrição" required:"true" input:"textarea"`
	ScheduledDate record.Date   `json:"scheduled_date" label:"Data" required:"true"`
	Status        string        `json:"status" label:"Situação" required:"true" options:"Agendada|Concluída|Cancelada"`
	Cost          record.Number `json:"cost" label:"Custo" min:"0"`
}
