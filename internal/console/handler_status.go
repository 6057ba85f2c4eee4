package console

import (
	"context"
)

const statusTemplate = `Profiles: {{ .Profiles }}, {{ .Rendering }} rendering
Render states: {{ if .RenderStates }}{{ join ", " .RenderStates | wordwrap 64 }}{{ else }}none{{ end }}
{{- range .Extra }}
{{ .Label }}: {{ .Value }}
{{- end }}`

type statusLine struct {
	Label string
	Value string
}

type statusFunc struct {
	label string
	value func() string
}

// AddStatus adds a line to the status command's output. value is called
// each time status runs.
func (h *Handler) AddStatus(label string, value func() string) {
	h.status = append(h.status, statusFunc{label: label, value: value})
}

func (h *Handler) showStatus(ctx context.Context, args []string) (string, error) {
	data := struct {
		Profiles     int
		Rendering    int
		RenderStates []string
		Extra        []statusLine
	}{}

	for _, p := range h.registry.Profiles() {
		data.Profiles++
		if p.ShouldRender(h.state) {
			data.Rendering++
		}
	}
	for _, rs := range h.state.ActiveStates() {
		data.RenderStates = append(data.RenderStates, string(rs))
	}
	for _, s := range h.status {
		data.Extra = append(data.Extra, statusLine{Label: s.label, Value: s.value()})
	}

	return ExpandTemplate(statusTemplate, data)
}
