package render

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"
)

const pageHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>
    :root {
      --primary: #2f855a;
      --font: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: var(--font);
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .card {
      background: #ffffff;
      max-width: 880px;
      margin: 0 auto 24px;
      padding: 40px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    h1 { margin: 0 0 24px; font-size: 24px; font-weight: 700; }
    .label {
      display: block;
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 6px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    form { display: flex; gap: 16px; align-items: flex-end; flex-wrap: wrap; }
    input { padding: 8px 10px; border: 1px solid #e3e8ee; border-radius: 4px; font-size: 14px; }
    button, .button {
      padding: 9px 16px;
      border: 0;
      border-radius: 4px;
      background: var(--primary);
      color: #ffffff;
      font-size: 14px;
      font-weight: 600;
      text-decoration: none;
      cursor: pointer;
    }
    .error {
      margin-bottom: 20px;
      padding: 12px 16px;
      border-radius: 4px;
      background: #fff5f5;
      color: #c53030;
      font-size: 14px;
    }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
      font-weight: 600;
    }
    td { padding: 12px 0; border-bottom: 1px solid #e3e8ee; font-size: 14px; }
    .td-right { text-align: right; }
    .stats { display: flex; gap: 32px; margin-bottom: 24px; }
    .stat-value { font-size: 18px; font-weight: 700; }
    .chart img { width: 100%; height: auto; }
    .empty { color: #8792a2; font-size: 14px; }
  </style>
</head>
<body>
  <div class="card">
    <h1>{{.Title}}</h1>
    {{if .Error}}<div class="error" role="alert">{{.Error}}</div>{{end}}
    <form method="post" action="/observations">
      <div>
        <label class="label" for="field-name">Field Name</label>
        <input id="field-name" name="field-name" type="text" value="{{.Form.FieldName}}" required />
      </div>
      <div>
        <label class="label" for="water-usage">Water Usage (liters)</label>
        <input id="water-usage" name="water-usage" type="number" step="any" min="0" value="{{.Form.WaterUsage}}" required />
      </div>
      <div>
        <label class="label" for="rainfall">Rainfall (mm)</label>
        <input id="rainfall" name="rainfall" type="number" step="any" min="0" value="{{.Form.Rainfall}}" required />
      </div>
      <button type="submit">Add Data</button>
    </form>
  </div>

  <div class="card">
    <table id="data-table">
      <thead>
        <tr>
          <th>#</th>
          <th>Field Name</th>
          <th class="td-right">Water Usage (liters)</th>
          <th class="td-right">Rainfall (mm)</th>
        </tr>
      </thead>
      <tbody>
        {{range .Rows}}
        <tr>
          <td>{{.Index}}</td>
          <td>{{.FieldName}}</td>
          <td class="td-right">{{formatNumber .WaterUsage}}</td>
          <td class="td-right">{{formatNumber .Rainfall}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    {{if .Rows}}
    <div class="stats">
      <div><span class="label">Total Fields</span><span class="stat-value">{{.Statistics.Count}}</span></div>
      <div><span class="label">Mean Water Usage</span><span class="stat-value">{{formatMean .Statistics.Mean}} liters</span></div>
      <div><span class="label">Max Water Usage</span><span class="stat-value">{{formatNumber .Statistics.Max}} liters</span></div>
      <div><span class="label">Min Water Usage</span><span class="stat-value">{{formatNumber .Statistics.Min}} liters</span></div>
    </div>
    <div class="chart">
      <img id="usage-chart" src="/chart.png?v={{.ChartVersion}}" alt="Water Usage vs Rainfall per Field" />
    </div>
    {{else}}
    <p class="empty">No observations yet.</p>
    {{end}}
  </div>

  <div class="card">
    <a class="button" href="{{.ReportURL}}">Generate PDF</a>
    <a class="button" href="{{.ExportURL}}">Export XLSX</a>
  </div>
</body>
</html>
`

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatNumber": formatNumber,
		"formatMean":   formatMean,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("page").Funcs(funcs).Parse(pageHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderPage(input PageInput) (string, error) {
	if strings.TrimSpace(input.Title) == "" {
		input.Title = "AgriTatva"
	}
	if input.ReportURL == "" {
		input.ReportURL = "/report.pdf"
	}
	if input.ExportURL == "" {
		input.ExportURL = "/observations.xlsx"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatMean(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
