package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachdehooge/state-alerts/internal/fetcher"
)

func feature(headline, severity string) fetcher.AlertFeature {
	return fetcher.AlertFeature{Properties: fetcher.AlertProperties{Headline: headline, Severity: severity}}
}

func TestRender_NoAlerts(t *testing.T) {
	view := Render(fetcher.AlertResponse{Title: "Alerts for VT", Features: []fetcher.AlertFeature{}})

	assert.Equal(t, "Alerts for VT: 0", view.Summary)
	assert.True(t, view.Empty)
	assert.Empty(t, view.Items)
}

func TestRender_NilFeaturesIsEmpty(t *testing.T) {
	view := Render(fetcher.AlertResponse{Title: "Alerts for VT"})
	assert.Equal(t, "Alerts for VT: 0", view.Summary)
	assert.True(t, view.Empty)
}

func TestRender_PreservesOrderAndDuplicates(t *testing.T) {
	data := fetcher.AlertResponse{
		Title: "Alerts for TX",
		Features: []fetcher.AlertFeature{
			feature("Tornado Warning", "Extreme"),
			feature("Flood Warning", "Moderate"),
			feature("Flood Warning", "Moderate"),
			feature("Air Quality Alert", "Unknown"),
		},
	}

	view := Render(data)

	assert.Equal(t, "Alerts for TX: 4", view.Summary)
	assert.False(t, view.Empty)
	assert.Equal(t, []string{"Tornado Warning", "Flood Warning", "Flood Warning", "Air Quality Alert"}, view.Headlines())
	assert.Equal(t, "severe", view.Items[0].SeverityClass)
	assert.Equal(t, "moderate", view.Items[1].SeverityClass)
	assert.Empty(t, view.Items[3].SeverityClass)
}

func TestRender_Idempotent(t *testing.T) {
	data := fetcher.AlertResponse{Title: "Alerts for OK", Features: []fetcher.AlertFeature{feature("Heat Advisory", "")}}
	assert.Equal(t, Render(data), Render(data))
}

func TestWritePage_WithAlerts(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC))
	SetClock(fake)
	defer SetClock(nil)

	view := Render(fetcher.AlertResponse{
		Title:    "Alerts for TX",
		Features: []fetcher.AlertFeature{feature("Flood Warning <b>", "Severe")},
	})

	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, Page{View: &view}))
	html := buf.String()

	assert.Contains(t, html, `<div class="alert-summary">Alerts for TX: 1</div>`)
	assert.Contains(t, html, `<li class="severe">Flood Warning &lt;b&gt;</li>`)
	assert.NotContains(t, html, NoAlertsText)
	assert.Contains(t, html, "Last updated: Oct 18, 2026 at 3:04:05 PM UTC")
	assert.Contains(t, html, `class="error-message"`)
	assert.NotContains(t, html, `error-message show`)
}

func TestWritePage_EmptyState(t *testing.T) {
	view := Render(fetcher.AlertResponse{Title: "Alerts for VT", Features: []fetcher.AlertFeature{}})

	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, Page{View: &view}))
	html := buf.String()

	assert.Contains(t, html, `<div class="no-alerts">`+NoAlertsText+`</div>`)
	assert.NotContains(t, html, `<ul class="alerts-list">`)
}

func TestWritePage_ErrorAndInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, Page{Input: "123", Error: "State abbreviation must be 2 characters"}))
	html := buf.String()

	assert.Contains(t, html, `class="error-message show">State abbreviation must be 2 characters</div>`)
	assert.Contains(t, html, `value="123"`)
	assert.NotContains(t, html, `class="alert-summary"`)
	assert.Equal(t, 1, strings.Count(html, `<form method="get" action="/">`))
}

func TestWritePage_LoadingDisablesButton(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, Page{Loading: true}))
	assert.Contains(t, buf.String(), `id="fetchButton" disabled`)
	assert.Contains(t, buf.String(), `class="loading show"`)
}

func TestGenerateAlertsHTML_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "alerts.html")
	view := Render(fetcher.AlertResponse{Title: "Alerts for TX", Features: []fetcher.AlertFeature{feature("Flood Warning", "")}})

	require.NoError(t, GenerateAlertsHTML(Page{View: &view}, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alerts for TX: 1")

	empty := Render(fetcher.AlertResponse{Title: "Alerts for TX"})
	require.NoError(t, GenerateAlertsHTML(Page{View: &empty}, out))
	data, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alerts for TX: 0")
	assert.NotContains(t, string(data), "Flood Warning")
}
