// Package styling turns the configured colors into styles for rendering.
package styling

import (
	"fmt"

	"github.com/ja-he/narrate/internal/config"
)

// Stylesheet represents all styles used by the application for rendering.
type Stylesheet struct {
	Normal   DrawStyling
	Selected DrawStyling
	Status   DrawStyling
	Warning  DrawStyling
}

// NewStylesheetFromConfig constructs a new stylesheet from a given config
// stylesheet.
func NewStylesheetFromConfig(c config.Stylesheet) (*Stylesheet, error) {
	stylesheet := Stylesheet{}

	for _, entry := range []struct {
		name   string
		target *DrawStyling
		from   config.Styling
	}{
		{"normal", &stylesheet.Normal, c.Normal},
		{"selected", &stylesheet.Selected, c.Selected},
		{"status", &stylesheet.Status, c.Status},
		{"warning", &stylesheet.Warning, c.Warning},
	} {
		s, err := StyleFromConfig(entry.from)
		if err != nil {
			return nil, fmt.Errorf("could not construct '%s' style: %w", entry.name, err)
		}
		*entry.target = s
	}

	return &stylesheet, nil
}
