package generator

import (
	"fmt"

	"github.com/Zachdehooge/state-alerts/internal/fetcher"
)

// NoAlertsText replaces the headline list when an area has no active alerts.
const NoAlertsText = "✅ No active alerts for this state!"

// View is the rendered form of one alerts response. It fully replaces
// whatever a surface showed before.
type View struct {
	Summary string `json:"summary"`
	Empty   bool   `json:"empty"`
	Items   []Item `json:"items,omitempty"`
}

// Item is a single list entry.
type Item struct {
	Headline      string `json:"headline"`
	SeverityClass string `json:"severityClass,omitempty"`
}

// Render builds the summary line and, when there are alerts, one item per
// feature in the order the endpoint returned them.
func Render(data fetcher.AlertResponse) View {
	count := len(data.Features)
	view := View{
		Summary: fmt.Sprintf("%s: %d", data.Title, count),
		Empty:   count == 0,
	}
	if view.Empty {
		return view
	}

	view.Items = make([]Item, count)
	for i, f := range data.Features {
		view.Items[i] = Item{
			Headline:      f.Properties.Headline,
			SeverityClass: getSeverityClass(f.Properties.Severity),
		}
	}
	return view
}

// Headlines returns the list entries as plain strings.
func (v View) Headlines() []string {
	out := make([]string, len(v.Items))
	for i, item := range v.Items {
		out[i] = item.Headline
	}
	return out
}

// getSeverityClass determines the CSS class based on severity
func getSeverityClass(severity string) string {
	switch severity {
	case "Severe", "Extreme":
		return "severe"
	case "Moderate":
		return "moderate"
	default:
		return ""
	}
}
