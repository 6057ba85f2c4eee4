package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-loadout/internal/loadout"
)

const profilesTemplate = `
{{- if not . }}No profiles.{{ else }}Profiles:
{{- range . }}
  {{ printf "%-28s" (trunc 28 .Name) }} {{ printf "%-9s" (lower .Container) }}
{{- if not .Enabled }} off{{ else if .Valid }} PASS {{ .Matched }}/{{ .Total }}{{ else }} FAIL {{ .Matched }}/{{ .Total }}{{ end }}
{{- if .Preview }} preview{{ end }}{{ if .Prioritized }} priority{{ end }}
{{- end }}
{{- end }}`

const checkTemplate = `{{ .Name }} ({{ lower .Container }}): {{ if .Valid }}PASS{{ else }}FAIL{{ end }}, {{ .Matched }} of {{ .Total }} matched
{{- if .Absent }}
  the {{ lower .Container }} is not loaded
{{- end }}
{{- range .Unmatched }}
  missing {{ requirement . }}
{{- end }}
{{- range .Anomalies }}
  unexpected item in slot {{ . }}
{{- end }}`

type profileRow struct {
	Name        string
	Container   string
	Enabled     bool
	Preview     bool
	Prioritized bool
	Valid       bool
	Absent      bool
	Matched     int
	Total       int
	Unmatched   []loadout.Requirement
	Anomalies   []int
}

func (h *Handler) row(p *loadout.Profile) profileRow {
	row := profileRow{
		Name:        p.Name,
		Container:   p.ContainerType.String(),
		Enabled:     p.Enabled,
		Preview:     p.PreviewMode,
		Prioritized: p.Prioritized,
	}

	res := p.ValidateDetailed(h.state, h.names)
	if res == nil {
		return row
	}
	row.Valid = res.Satisfies(p.Presence.Mode, p.Presence.Threshold)
	row.Absent = h.state.Container(p.ContainerType) == nil
	row.Matched = res.Matched
	row.Total = res.Total
	row.Unmatched = res.Unmatched
	row.Anomalies = res.Anomalies
	return row
}

func (h *Handler) listProfiles(ctx context.Context, args []string) (string, error) {
	var rows []profileRow
	for _, p := range h.registry.Profiles() {
		rows = append(rows, h.row(p))
	}
	return ExpandTemplate(profilesTemplate, rows)
}

func (h *Handler) checkProfile(ctx context.Context, args []string) (string, error) {
	p, err := h.resolve(strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	if !p.Enabled {
		return fmt.Sprintf("%s is disabled.", p.Name), nil
	}
	return ExpandTemplate(checkTemplate, h.row(p))
}
