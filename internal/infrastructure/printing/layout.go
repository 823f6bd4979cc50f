package printing

// documentLayout is the printable markup for every document kind.
// Styles are inlined; the page references no external resources.
const documentLayout = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="UTF-8">
<title>{{.Title}} {{.Reference}}</title>
<style>
@page { size: {{pageSize .Page}}; margin: {{pageMargins .Page}}; }
* { box-sizing: border-box; }
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #111827; margin: 0; }
header.doc-header { display: flex; justify-content: space-between; align-items: flex-start; border-bottom: 2px solid #111827; padding-bottom: 8px; margin-bottom: 12px; }
header.doc-header h1 { font-size: 22px; margin: 0; letter-spacing: 1px; }
header.doc-header .company { font-size: 16px; font-weight: bold; }
.header-fields p { margin: 2px 0; text-align: right; }
.badge { display: inline-block; padding: 2px 8px; margin-left: 4px; border: 1px solid currentColor; border-radius: 10px; font-size: 10px; font-weight: bold; }
section { margin-bottom: 12px; page-break-inside: avoid; }
section h2 { font-size: 13px; margin: 0 0 6px 0; border-bottom: 1px solid #d1d5db; padding-bottom: 2px; }
table { width: 100%; border-collapse: collapse; }
table.fields td { padding: 3px 0; }
table.fields td.value { text-align: right; }
table.grid th { background: #f3f4f6; text-align: left; font-size: 10px; padding: 4px; border-bottom: 1px solid #9ca3af; }
table.grid td { font-size: 10px; padding: 3px 4px; border-bottom: 1px solid #e5e7eb; }
.highlight { font-weight: bold; font-size: 13px; }
p.text { white-space: pre-wrap; margin: 0; }
footer { border-top: 1px solid #d1d5db; margin-top: 16px; padding-top: 6px; text-align: center; font-size: 10px; color: #6b7280; }
footer p { margin: 2px 0; }
{{emphasisRules}}
</style>
</head>
<body>
{{- range .Sections}}
{{- if isKind . "header"}}
<header class="doc-header">
  <div class="company">{{fieldValue . "Company"}}</div>
  <div class="header-fields">
    <h1>{{.Title}}</h1>
    {{- range .Fields}}{{if ne .Label "Company"}}
    <p class="{{cellClass .}}">{{.Value}}</p>{{end}}{{end}}
    {{- if .Badges}}
    <p>{{range .Badges}}<span class="badge em-{{.Emphasis}}">{{.Label}}</span>{{end}}</p>
    {{- end}}
  </div>
</header>
{{- else if isKind . "footer"}}
<footer>
  {{- range .Fields}}
  <p>{{.Value}}</p>
  {{- end}}
</footer>
{{- else if isKind . "description"}}
<section class="description">
  <h2>{{.Title}}</h2>
  <p class="text">{{.Text}}</p>
</section>
{{- else if .Table}}
<section class="{{.Kind}}">
  <h2>{{.Title}}</h2>
  <table class="grid">
    <thead><tr>{{range .Table.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{- range .Table.Rows}}
      <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{- end}}
    </tbody>
  </table>
</section>
{{- else}}
<section class="{{.Kind}}">
  <h2>{{.Title}}</h2>
  <table class="fields">
  {{- range .Fields}}
    <tr class="{{cellClass .}}"><td>{{.Label}}</td><td class="value">{{.Value}}</td></tr>
  {{- end}}
  </table>
</section>
{{- end}}
{{- end}}
</body>
</html>
`
