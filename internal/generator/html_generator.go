package generator

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/jonboulle/clockwork"
	"github.com/natefinch/atomic"
)

var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for page timestamps. Pass nil to reset.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Page is everything the widget page shows: the input field, the error
// region, the loading indicator and the alerts region.
type Page struct {
	Action  string
	Input   string
	Error   string
	Loading bool
	View    *View
}

var pageTemplate = template.Must(template.New("alerts").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
   <meta charset="UTF-8"/>
   <title>Weather Alerts by State</title>
   <style>
      :root {
         --bg-color: #121212;
         --text-color: #e0e0e0;
         --card-bg: #1e1e1e;
         --card-border: #333;
         --severe-bg: #3d1a1a;
         --severe-border: #a52a2a;
         --moderate-bg: #3d2e1a;
         --moderate-border: #b25900;
         --summary-bg: #252525;
         --error-color: #ff6b6b;
      }
      body {
         font-family: Arial, sans-serif;
         max-width: 800px;
         margin: 0 auto;
         padding: 20px;
         background-color: var(--bg-color);
         color: var(--text-color);
      }
      .error-message { display: none; color: var(--error-color); margin: 10px 0; }
      .error-message.show { display: block; }
      .loading { display: none; }
      .loading.show { display: block; }
      .alert-summary {
         background-color: var(--summary-bg);
         padding: 15px;
         border-radius: 5px;
         margin-bottom: 15px;
      }
      .alerts-list { padding-left: 0; list-style: none; }
      .alerts-list li {
         border: 1px solid var(--card-border);
         margin-bottom: 10px;
         padding: 10px;
         border-radius: 5px;
         background-color: var(--card-bg);
      }
      .alerts-list li.severe { background-color: var(--severe-bg); border-color: var(--severe-border); }
      .alerts-list li.moderate { background-color: var(--moderate-bg); border-color: var(--moderate-border); }
      .last-updated { font-size: 0.8em; color: #888; }
   </style>
</head>
<body>
   <h1>Weather Alerts by State</h1>
   <form method="get" action="{{ .Action }}">
      <input type="text" id="stateInput" name="area" maxlength="8" placeholder="e.g. TX" value="{{ .Input }}" autofocus/>
      <button type="submit" id="fetchButton"{{ if .Loading }} disabled{{ end }}>Get Alerts</button>
   </form>
   <div id="error-message" class="error-message{{ if .Error }} show{{ end }}">{{ .Error }}</div>
   <div id="loading" class="loading{{ if .Loading }} show{{ end }}">Loading alerts...</div>
   <div id="weather-alerts">
   {{- with .View }}
      <div class="alert-summary">{{ .Summary }}</div>
      {{- if .Empty }}
      <div class="no-alerts">{{ $.NoAlertsText }}</div>
      {{- else }}
      <ul class="alerts-list">
         {{- range .Items }}
         <li class="{{ .SeverityClass }}">{{ .Headline }}</li>
         {{- end }}
      </ul>
      {{- end }}
      <div class="last-updated">Last updated: {{ $.LastUpdated }}</div>
   {{- end }}
   </div>
</body>
</html>
`))

// WritePage renders page as HTML to w.
func WritePage(w io.Writer, page Page) error {
	if page.Action == "" {
		page.Action = "/"
	}
	data := struct {
		Page
		NoAlertsText string
		LastUpdated  string
	}{
		Page:         page,
		NoAlertsText: NoAlertsText,
		LastUpdated:  clock.Now().Format("Jan 2, 2006 at 3:04:05 PM MST"),
	}
	return pageTemplate.Execute(w, data)
}

// GenerateAlertsHTML writes page to outputPath, replacing the file atomically
// so a browser never reads a partial page.
func GenerateAlertsHTML(page Page, outputPath string) error {
	var buf bytes.Buffer
	if err := WritePage(&buf, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	if err := atomic.WriteFile(outputPath, &buf); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}
