package landscaping

import (
	"strconv"

	"github.com/agrosuite/dashboard/internal/entity"
	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/agrosuite/dashboard/internal/form"
	"github.com/agrosuite/dashboard/internal/record"
	"github.com/agrosuite/dashboard/internal/render"
)

// ClientFilters describes the filter parameters of the client list
var ClientFilters = filter.Schema{
	{Param: "status", Kind: filter.Equal, Fields: []string{"status"}},
	{Param: "city", Kind: filter.Equal, Fields: []string{"city"}},
	{Param: "search", Kind: filter.Contains, Fields: []string{"name", "document"}},
}

// Clients describes the client list
func Clients() *entity.Definition[Client] {
	return &entity.Definition[Client]{
		Domain:   "landscaping",
		Name:     "clients",
		Title:    "Clientes",
		Singular: "Cliente",
		Resource: "/api/landscaping/clients",
		Schema:   ClientFilters,
		FilterFields: []form.Field{
			entity.Text("search", "Nome ou documento"),
			entity.Option("status", "Situação", StatusActive, StatusInactive),
			entity.Text("city", "Cidade"),
		},
		View: render.View[Client]{
			Title:  "Clientes",
			Layout: render.LayoutTable,
			Columns: []render.Column[Client]{
				{Header: "Nome", Value: func(_ *render.Formatter, c Client) string { return c.Name }},
				{Header: "CPF/CNPJ", Value: func(_ *render.Formatter, c Client) string { return c.Document }},
				{Header: "Telefone", Value: func(_ *render.Formatter, c Client) string { return c.Phone }},
				{Header: "E-mail", Value: func(_ *render.Formatter, c Client) string { return c.Email }},
				{Header: "Cidade", Value: func(_ *render.Formatter, c Client) string { return c.City }},
				{Header: "Situação", Value: func(_ *render.Formatter, c Client) string { return c.Status }},
			},
			ID:     func(c Client) string { return c.ID.String() },
			Status: func(c Client) string { return c.Status },
			Empty:  "Nenhum cliente encontrado.",
		},
		Samples: []Client{
			{ID: "1", Name: "Condomínio Jardim das Flores", Document: "12.345.678/0001-90", Phone: "(11) 4002-8922", Email: "sindico@jardimdasflores.com.br", City: "Campinas", Status: StatusActive},
			{ID: "2", Name: "Maria Aparecida Souza", Document: "123.456.789-09", Phone: "(19) 99876-5432", City: "Holambra", Status: StatusActive},
			{ID: "3", Name: "Hotel Fazenda Boa Vista", Document: "98.765.432/0001-10", Email: "contato@boavista.tur.br", City: "Atibaia", Status: StatusInactive},
		},
		IDField:     "id",
		StatusField: "status",
	}
}

// ServiceFilters describes the filter parameters of the service catalogue
var ServiceFilters = filter.Schema{
	{Param: "status", Kind: filter.Equal, Fields: []string{"status"}},
	{Param: "category", Kind: filter.Equal, Fields: []string{"category"}},
	{Param: "price_min", Kind: filter.Min, Fields: []string{"unit_price"}},
	{Param: "price_max", Kind: filter.Max, Fields: []string{"unit_price"}},
}

// Services describes the service catalogue
func Services() *entity.Definition[Service] {
	return &entity.Definition[Service]{
		Domain:   "landscaping",
		Name:     "services",
		Title:    "Serviços",
		Singular: "Serviço",
		Resource: "/api/landscaping/services",
		Schema:   ServiceFilters,
		FilterFields: []form.Field{
			entity.Option("status", "Situação", StatusActive, StatusInactive),
			entity.Option("category", "Categoria", "Plantio", "Poda", "Gramado", "Irrigação", "Limpeza"),
			entity.Number("price_min", "Preço mínimo"),
			entity.Number("price_max", "Preço máximo"),
		},
		View: render.View[Service]{
			Title:  "Serviços",
			Layout: render.LayoutTable,
			Columns: []render.Column[Service]{
				{Header: "Serviço", Value: func(_ *render.Formatter, s Service) string { return s.Name }},
				{Header: "Categoria", Value: func(_ *render.Formatter, s Service) string { return s.Category }},
				{Header: "Unidade", Value: func(_ *render.Formatter, s Service) string { return s.Unit }},
				{Header: "Preço unitário", Numeric: true, Value: func(f *render.Formatter, s Service) string { return f.Currency(s.UnitPrice) }},
				{Header: "Situação", Value: func(_ *render.Formatter, s Service) string { return s.Status }},
			},
			ID:     func(s Service) string { return s.ID.String() },
			Status: func(s Service) string { return s.Status },
			Empty:  "Nenhum serviço encontrado.",
		},
		Samples: []Service{
			{ID: "1", Name: "Plantio de grama esmeralda", Category: "Gramado", Unit: "m²", UnitPrice: 18.5, Status: StatusActive},
			{ID: "2", Name: "Poda de árvores de médio porte", Category: "Poda", Unit: "unidade", UnitPrice: 150, Status: StatusActive},
			{ID: "3", Name: "Instalação de irrigação por gotejamento", Category: "Irrigação", Unit: "m²", UnitPrice: 42, Status: StatusInactive},
		},
		IDField:     "id",
		StatusField: "status",
	}
}

// QuoteFilters describes the filter parameters of the quote list
var QuoteFilters = filter.Schema{
	{Param: "status", Kind: filter.Equal, Fields: []string{"status"}},
	{Param: "client_id", Kind: filter.Equal, Fields: []string{"client_id"}},
	{Param: "date_from", Kind: filter.From, Fields: []string{"issue_date"}},
	{Param: "date_to", Kind: filter.To, Fields: []string{"issue_date"}},
	{Param: "value_min", Kind: filter.Min, Fields: []string{"total_value"}},
	{Param: "value_max", Kind: filter.Max, Fields: []string{"total_value"}},
}

// QuoteSamples returns the records displayed when the quote list cannot be loaded
func QuoteSamples() []Quote {
	quotes := []Quote{
		{
			ID:         "1",
			ClientID:   "1",
			ClientName: "Condomínio Jardim das Flores",
			Items: []LineItem{
				{Description: "Poda de árvores de médio porte", Quantity: 3, UnitPrice: 150},
				{Description: "Plantio de grama esmeralda", Quantity: 120, UnitPrice: 18.5},
			},
			Discount:   10,
			Status:     StatusPending,
			IssueDate:  record.NewDate(2024, 4, 2),
			ValidUntil: record.NewDate(2024, 5, 2),
		},
		{
			ID:         "2",
			ClientID:   "2",
			ClientName: "Maria Aparecida Souza",
			Items: []LineItem{
				{Description: "Projeto paisagístico residencial", Quantity: 1, UnitPrice: 2800},
			},
			Status:     StatusApproved,
			IssueDate:  record.NewDate(2024, 3, 12),
			ValidUntil: record.NewDate(2024, 4, 12),
		},
	}
	for i := range quotes {
		quotes[i].TotalValue = record.Number(Total(quotes[i].Items, quotes[i].Discount.Float()))
	}
	return quotes
}

// Quotes describes the quote list
func Quotes() *entity.Definition[Quote] {
	return &entity.Definition[Quote]{
		Domain:    "landscaping",
		Name:      "quotes",
		Title:     "Orçamentos",
		Singular:  "Orçamento",
		Resource:  "/api/landscaping/quotes",
		UseSearch: true,
		Schema:    QuoteFilters,
		FilterFields: []form.Field{
			entity.Option("status", "Situação", StatusPending, StatusApproved, StatusRejected),
			entity.Text("client_id", "Cliente"),
			entity.Date("date_from", "Emitido a partir de"),
			entity.Date("date_to", "Emitido até"),
			entity.Number("value_min", "Valor mínimo"),
			entity.Number("value_max", "Valor máximo"),
		},
		View: render.View[Quote]{
			Title:  "Orçamentos",
			Layout: render.LayoutTable,
			Columns: []render.Column[Quote]{
				{Header: "Nº", Value: func(_ *render.Formatter, q Quote) string { return q.ID.String() }},
				{Header: "Cliente", Value: func(_ *render.Formatter, q Quote) string { return q.ClientName }},
				{Header: "Itens", Numeric: true, Value: func(_ *render.Formatter, q Quote) string { return strconv.Itoa(len(q.Items)) }},
				{Header: "Desconto", Numeric: true, Value: func(f *render.Formatter, q Quote) string { return f.Percent(q.Discount) }},
				{Header: "Total", Numeric: true, Value: func(f *render.Formatter, q Quote) string { return f.Currency(record.Number(q.DisplayTotal())) }},
				{Header: "Emissão", Value: func(f *render.Formatter, q Quote) string { return f.Date(q.IssueDate) }},
				{Header: "Validade", Value: func(f *render.Formatter, q Quote) string { return f.Date(q.ValidUntil) }},
				{Header: "Situação", Value: func(_ *render.Formatter, q Quote) string { return q.Status }},
			},
			ID:     func(q Quote) string { return q.ID.String() },
			Status: func(q Quote) string { return q.Status },
			Empty:  "Nenhum orçamento encontrado.",
		},
		StatusActions: []entity.StatusAction{
			{Name: "approve", Label: "Aprovar", Status: StatusApproved, From: []string{StatusPending}},
			{Name: "reject", Label: "Rejeitar", Status: StatusRejected, From: []string{StatusPending}},
		},
		Samples:     QuoteSamples(),
		IDField:     "id",
		StatusField: "status",
	}
}

// ProjectFilters describes the filter parameters of the project board
var ProjectFilters = filter.Schema{
	{Param: "status", Kind: filter.Equal, Fields: []string{"status"}},
	{Param: "search", Kind: filter.Contains, Fields: []string{"name", "client_name"}},
}

// Projects describes the project board
func Projects() *entity.Definition[Project] {
	return &entity.Definition[Project]{
		Domain:   "landscaping",
		Name:     "projects",
		Title:    "Projetos",
		Singular: "Projeto",
		Resource: "/api/landscaping/projects",
		Schema:   ProjectFilters,
		FilterFields: []form.Field{
			entity.Text("search", "Projeto ou cliente"),
			entity.Option("status", "Situação", StatusPlanning, StatusInProgress, StatusDone),
		},
		View: render.View[Project]{
			Title:  "Projetos",
			Layout: render.LayoutKanban,
			Columns: []render.Column[Project]{
				{Header: "Projeto", Value: func(_ *render.Formatter, p Project) string { return p.Name }},
				{Header: "Cliente", Value: func(_ *render.Formatter, p Project) string { return p.ClientName }},
				{Header: "Início", Value: func(f *render.Formatter, p Project) string { return f.Date(p.StartDate) }},
				{Header: "Término", Value: func(f *render.Formatter, p Project) string { return f.Date(p.EndDate) }},
				{Header: "Orçamento", Numeric: true, Value: func(f *render.Formatter, p Project) string { return f.Currency(p.Budget) }},
			},
			ID:     func(p Project) string { return p.ID.String() },
			Status: func(p Project) string { return p.Status },
			Lanes:  []string{StatusPlanning, StatusInProgress, StatusDone},
			Empty:  "Nenhum projeto encontrado.",
		},
		StatusActions: []entity.StatusAction{
			{Name: "start", Label: "Iniciar", Status: StatusInProgress, From: []string{StatusPlanning}},
			{Name: "finish", Label: "Concluir", Status: StatusDone, From: []string{StatusInProgress}},
		},
		Samples: []Project{
			{ID: "1", Name: "Jardim vertical da portaria", ClientName: "Condomínio Jardim das Flores", Status: StatusInProgress, StartDate: record.NewDate(2024, 3, 1), Budget: 12500},
			{ID: "2", Name: "Paisagismo da área da piscina", ClientName: "Hotel Fazenda Boa Vista", Status: StatusPlanning, StartDate: record.NewDate(2024, 6, 10), Budget: 38000},
			{ID: "3", Name: "Reforma do jardim frontal", ClientName: "Maria Aparecida Souza", Status: StatusDone, StartDate: record.NewDate(2023, 10, 2), EndDate: record.NewDate(2023, 11, 20), Budget: 2800},
		},
		IDField:     "id",
		StatusField: "status",
	}
}

// MaintenanceFilters describes the filter parameters of the maintenance schedule
var MaintenanceFilters = filter.Schema{
	{Param: "status", Kind: filter.Equal, Fields: []string{"status"}},
	{Param: "date_from", Kind: filter.From, Fields: []string{"scheduled_date"}},
	{Param: "date_to", Kind: filter.To, Fields: []string{"scheduled_date"}},
}

// MaintenanceSchedule describes the maintenance schedule
func MaintenanceSchedule() *entity.Definition[Maintenance] {
	return &entity.Definition[Maintenance]{
		Domain:   "landscaping",
		Name:     "maintenance",
		Title:    "Manutenções",
		Singular: "Manutenção",
		Resource: "/api/landscaping/maintenance",
		Schema:   MaintenanceFilters,
		FilterFields: []form.Field{
			entity.Option("status", "Situação", StatusScheduled, StatusCompleted, StatusCanceled),
			entity.Date("date_from", "A partir de"),
			entity.Date("date_to", "Até"),
		},
		View: render.View[Maintenance]{
			Title:  "Manutenções",
			Layout: render.LayoutTable,
			Columns: []render.Column[Maintenance]{
				{Header: "Projeto", Value: func(_ *render.Formatter, m Maintenance) string { return m.ProjectName }},
				{Header: "Descrição", Value: func(_ *render.Formatter, m Maintenance) string { return m.Description }},
				{Header: "Data", Value: func(f *render.Formatter, m Maintenance) string { return f.Date(m.ScheduledDate) }},
				{Header: "Custo", Numeric: true, Value: func(f *render.Formatter, m Maintenance) string { return f.Currency(m.Cost) }},
				{Header: "Situação", Value: func(_ *render.Formatter, m Maintenance) string { return m.Status }},
			},
			ID:     func(m Maintenance) string { return m.ID.String() },
			Status: func(m Maintenance) string { return m.Status },
			Empty:  "Nenhuma manutenção encontrada.",
		},
		StatusActions: []entity.StatusAction{
			{Name: "complete", Label: "Concluir", Status: StatusCompleted, From: []string{StatusScheduled}},
		},
		Samples: []Maintenance{
			{ID: "1", ProjectName: "Jardim vertical da portaria", Description: "Adubação e troca de mudas", ScheduledDate: record.NewDate(2024, 5, 15), Status: StatusScheduled, Cost: 350},
			{ID: "2", ProjectName: "Reforma do jardim frontal", Description: "Poda de manutenção", ScheduledDate: record.NewDate(2024, 2, 20), Status: StatusCompleted, Cost: 180},
		},
		IDField:     "id",
		StatusField: "status",
	}
}
