package render

import "html/template"

var fragments = template.Must(template.New("fragments").Parse(`
{{define "empty"}}<div class="empty-state rounded-md bg-white p-6 text-center text-sm text-gray-500">{{.}}</div>{{end}}

{{define "actions"}}<div class="row-actions flex gap-2">
{{- range .}}
{{- if .Navigate}}<a href="{{.Href}}" class="text-indigo-600 hover:text-indigo-900" data-action="{{.Name}}">{{.Label}}</a>
{{- else}}<form method="POST" action="{{.Href}}" class="inline"{{if .Confirm}} onsubmit="return confirm({{.Confirm}})"{{end}}><button type="submit" class="text-indigo-600 hover:text-indigo-900" data-action="{{.Name}}">{{.Label}}</button></form>
{{- end}}
{{- end}}
</div>{{end}}

{{define "table"}}{{if .Rows}}<table class="records min-w-full divide-y divide-gray-200">
<thead class="bg-gray-50"><tr>{{range .Headers}}<th class="px-4 py-2 text-left text-xs font-medium uppercase text-gray-500">{{.}}</th>{{end}}{{if .HasActions}}<th></th>{{end}}</tr></thead>
<tbody class="bg-white divide-y divide-gray-200">
{{- range .Rows}}
<tr data-id="{{.ID}}">{{range .Cells}}<td class="px-4 py-2 text-sm{{if .Numeric}} text-right{{end}}">{{.Text}}</td>{{end}}{{if $.HasActions}}<td class="px-4 py-2">{{template "actions" .Actions}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>{{else}}{{template "empty" .Empty}}{{end}}{{end}}

{{define "card"}}<div class="card bg-white shadow rounded-lg p-4" data-id="{{.ID}}">
<div class="flex justify-between"><h3 class="text-sm font-semibold text-gray-900">{{.Title}}</h3>{{if .Status}}<span class="badge text-xs text-gray-500">{{.Status}}</span>{{end}}</div>
<dl class="mt-2 text-sm">{{range .Details}}<div class="flex justify-between"><dt class="text-gray-500">{{.Header}}</dt><dd>{{.Text}}</dd></div>{{end}}</dl>
{{template "actions" .Actions}}
</div>{{end}}

{{define "cards"}}{{if .Rows}}<div class="cards grid grid-cols-1 gap-4 sm:grid-cols-2 lg:grid-cols-3">
{{- range .Rows}}
{{template "card" .}}
{{- end}}
</div>{{else}}{{template "empty" .Empty}}{{end}}{{end}}

{{define "kanban"}}{{if .Rows}}<div class="kanban grid gap-4" style="grid-template-columns: repeat({{len .Lanes}}, minmax(0, 1fr))">
{{- range .Lanes}}
<section class="lane bg-gray-100 rounded-lg p-3" data-lane="{{.Name}}"><h2 class="text-sm font-semibold text-gray-700">{{.Name}} <span class="text-gray-400">{{len .Rows}}</span></h2>
{{- range .Rows}}
{{template "card" .}}
{{- end}}
</section>
{{- end}}
</div>{{else}}{{template "empty" .Empty}}{{end}}{{end}}

{{define "pagination"}}<nav class="pagination flex gap-1 mt-4" aria-label="Paginação">
{{- range .}}
{{- if .Clickable}}<a href="{{.Href}}" class="px-3 py-1 rounded border text-sm" data-page="{{.Page}}">{{.Label}}</a>
{{- else if .Active}}<span class="px-3 py-1 rounded border text-sm bg-indigo-600 text-white" aria-current="page">{{.Label}}</span>
{{- else}}<span class="px-3 py-1 text-sm text-gray-400 disabled">{{.Label}}</span>
{{- end}}
{{- end}}
</nav>{{end}}

{{define "notice"}}<div class="notice notice-{{.Level}} rounded-md p-4 mb-4 text-sm" role="alert">{{.Message}}</div>{{end}}
`))
