package web

import (
	"encoding/json"
	"html/template"
	"io"
)

const layoutTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}} · AgroSuite</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="https://unpkg.com/htmx.org@1.9.12"></script>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
</head>
<body class="bg-gray-50 text-gray-900">
    <nav class="bg-green-800 text-white px-6 py-3 flex flex-wrap gap-4 items-center">
        <a href="/" class="font-bold mr-4">AgroSuite</a>
        {{range .Nav}}
        <a href="{{.Path}}" class="text-sm hover:underline{{if eq .Path $.Path}} font-semibold underline{{end}}">{{.Title}}</a>
        {{end}}
        <a href="/dairy/analytics" class="text-sm hover:underline">Análise de leite</a>
    </nav>
    <main class="max-w-7xl mx-auto p-6">
        {{if .Flash}}{{.Flash}}{{end}}
        {{template "content" .}}
    </main>
</body>
</html>`

const panelTemplate = `{{define "panel"}}<div id="panel">{{.Notice}}{{.Body}}{{.Pagination}}</div>{{end}}`

const fieldTemplate = `{{define "field"}}
<label class="block text-sm">
    <span class="text-gray-700">{{.Label}}{{if .Required}} *{{end}}</span>
    {{if eq .Input "select"}}
    <select name="{{.Name}}" class="mt-1 block w-full border rounded px-2 py-1">
        <option value="">Todos</option>
        {{$value := .Value}}{{range .Options}}<option value="{{.}}"{{if eq . $value}} selected{{end}}>{{.}}</option>{{end}}
    </select>
    {{else if eq .Input "textarea"}}
    <textarea name="{{.Name}}" class="mt-1 block w-full border rounded px-2 py-1">{{.Value}}</textarea>
    {{else}}
    <input type="{{.Input}}" name="{{.Name}}" value="{{.Value}}"{{if eq .Input "number"}} step="any"{{end}}{{if .Min}} min="{{.Min}}"{{end}}{{if .Max}} max="{{.Max}}"{{end}}{{if .Required}} required{{end}} class="mt-1 block w-full border rounded px-2 py-1">
    {{end}}
    {{if .Error}}<span class="text-xs text-red-600" data-error="{{.Name}}">{{.Error}}</span>{{end}}
</label>
{{end}}`

var pageTemplates = map[string]string{
	"home": `{{define "content"}}
<h1 class="text-2xl font-bold mb-6">Painel</h1>
<div class="grid grid-cols-1 md:grid-cols-3 gap-4">
    {{range .Nav}}
    <a href="{{.Path}}" class="bg-white shadow rounded p-4 hover:shadow-md">
        <p class="text-xs uppercase text-gray-500">{{.Domain}}</p>
        <p class="text-lg font-semibold">{{.Title}}</p>
    </a>
    {{end}}
</div>
{{end}}`,

	"list": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <h1 class="text-2xl font-bold">{{.Title}}</h1>
    <a href="{{.Path}}/new" class="bg-green-700 text-white text-sm px-4 py-2 rounded">Novo registro</a>
</div>
<form method="get" action="{{.Path}}" hx-get="{{.Path}}/panel" hx-target="#panel" hx-swap="outerHTML" class="bg-white shadow rounded p-4 mb-4 grid grid-cols-1 md:grid-cols-4 gap-4 items-end">
    {{range .Filters}}{{template "field" .}}{{end}}
    <input type="hidden" name="page_size" value="{{.PageSize}}">
    <button type="submit" class="bg-gray-800 text-white text-sm px-4 py-2 rounded">Filtrar</button>
</form>
{{template "panel" .Panel}}
{{end}}`,

	"form": `{{define "content"}}
<h1 class="text-2xl font-bold mb-4">{{.Title}}</h1>
{{.Notice}}
{{if .Details}}
<dl class="bg-white shadow rounded p-4 mb-6 grid grid-cols-1 md:grid-cols-3 gap-4"{{if .Sample}} data-sample="true"{{end}}>
    {{range .Details}}<div><dt class="text-xs text-gray-500">{{.Header}}</dt><dd>{{.Text}}</dd></div>{{end}}
</dl>
{{end}}
<form method="post" action="{{.Action}}" class="bg-white shadow rounded p-4 grid grid-cols-1 md:grid-cols-2 gap-4">
    {{range .Fields}}{{template "field" .}}{{end}}
    {{if .LineItems}}
    <fieldset class="md:col-span-2" hx-post="/landscaping/quotes/preview" hx-trigger="change" hx-target="#quote-preview" hx-swap="none">
        <legend class="font-semibold mb-2">Itens</legend>
        {{if .ItemsError}}<p class="text-xs text-red-600" data-error="items">{{.ItemsError}}</p>{{end}}
        <table class="min-w-full">
            <thead><tr><th class="text-left text-sm">Descrição</th><th class="text-left text-sm">Quantidade</th><th class="text-left text-sm">Preço unitário</th><th class="text-right text-sm">Subtotal</th></tr></thead>
            <tbody>
            {{range .LineItems}}
            <tr>
                <td><input name="items.{{.Index}}.description" value="{{.Description}}" class="border rounded px-2 py-1 w-full"></td>
                <td><input type="number" step="any" name="items.{{.Index}}.quantity" value="{{.Quantity}}" class="border rounded px-2 py-1 w-full"></td>
                <td><input type="number" step="any" name="items.{{.Index}}.unit_price" value="{{.UnitPrice}}" class="border rounded px-2 py-1 w-full"></td>
                <td class="text-right text-sm">{{.Subtotal}}</td>
            </tr>
            {{end}}
            </tbody>
        </table>
        <p id="quote-preview" class="text-right text-sm mt-2">Total: <span data-total>{{.ItemsTotal}}</span></p>
    </fieldset>
    {{end}}
    <div class="md:col-span-2 flex gap-2">
        <button type="submit" class="bg-green-700 text-white text-sm px-4 py-2 rounded">Salvar</button>
        <a href="{{.Path}}" class="text-sm px-4 py-2">Voltar</a>
    </div>
</form>
{{end}}`,

	"analytics": `{{define "content"}}
<h1 class="text-2xl font-bold mb-4">{{.Title}}</h1>
<form method="get" action="/dairy/analytics" class="bg-white shadow rounded p-4 mb-4 grid grid-cols-1 md:grid-cols-4 gap-4 items-end">
    {{range .Filters}}{{template "field" .}}{{end}}
    <button type="submit" class="bg-gray-800 text-white text-sm px-4 py-2 rounded">Filtrar</button>
</form>
<div class="grid grid-cols-2 md:grid-cols-4 gap-4 mb-4">
    <div class="bg-white shadow rounded p-4"><p class="text-xs text-gray-500">Total</p><p class="text-xl" data-summary="total">{{.Summary.Total}}</p></div>
    <div class="bg-white shadow rounded p-4"><p class="text-xs text-gray-500">Média diária</p><p class="text-xl">{{.Summary.Average}}</p></div>
    <div class="bg-white shadow rounded p-4"><p class="text-xs text-gray-500">Gordura média</p><p class="text-xl">{{.Summary.Fat}}</p></div>
    <div class="bg-white shadow rounded p-4"><p class="text-xs text-gray-500">Melhor dia</p><p class="text-xl">{{.Summary.BestDay}}</p></div>
</div>
<div class="bg-white shadow rounded p-4 mb-4"><canvas id="production-chart"></canvas></div>
<script>
new Chart(document.getElementById("production-chart"), {type: "line", data: {{toJSON .Chart}}});
</script>
{{template "panel" .Panel}}
{{end}}`,

	"error": `{{define "content"}}
<h1 class="text-2xl font-bold mb-4">{{.Title}}</h1>
{{range .Messages}}<p class="text-red-700" data-error>{{.}}</p>{{end}}
<a href="/" class="text-sm underline">Voltar ao painel</a>
{{end}}`,
}

var templateFuncs = template.FuncMap{
	"toJSON": func(value any) template.JS {
		raw, err := json.Marshal(value)
		if err != nil {
			return "null"
		}
		return template.JS(raw)
	},
}

var (
	pages     = parsePages()
	fragments = template.Must(template.New("fragments").Parse(panelTemplate))
)

func parsePages() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(pageTemplates))
	for name, content := range pageTemplates {
		tmpl := template.Must(template.New("layout").Funcs(templateFuncs).Parse(layoutTemplate))
		template.Must(tmpl.Parse(panelTemplate))
		template.Must(tmpl.Parse(fieldTemplate))
		parsed[name] = template.Must(tmpl.Parse(content))
	}
	return parsed
}

func renderPanel(w io.Writer, snapshot any) error {
	return fragments.ExecuteTemplate(w, "panel", snapshot)
}
