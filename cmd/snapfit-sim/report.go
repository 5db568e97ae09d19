package main

import (
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/snapfit/ecs"
	"github.com/plus3/snapfit/puzzle"
)

type Report struct {
	// Configuration
	Pieces   int
	Solving  int
	Required int
	Seed     uint64
	Dt       float64
	Session  time.Duration

	// Results
	Outcome    string
	Correct    int
	Frames     int
	Elapsed    time.Duration
	WallTime   time.Duration
	Placements []Placement
	Systems    []ecs.SystemStats
	Storage    *ecs.StorageStats
}

// Placement is one PiecePlaced event as seen by the report.
type Placement struct {
	Piece puzzle.PieceID
	Frame uint64
	At    time.Duration
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Snapfit Simulation Report

## Configuration
- **Pieces:** {{.Pieces}} ({{.Solving}} driven by the autopilot, {{.Required}} required)
- **Seed:** {{.Seed}}
- **Frame Step:** {{.Dt}}s
- **Session Length:** {{.Session}}

## Outcome
- **Result:** {{.Outcome}}
- **Placed:** {{.Correct}}/{{.Required}}
- **Frames:** {{.Frames}}
- **Session Time Used:** {{round .Elapsed}}
- **Wall Time:** {{.WallTime}}
{{if .Placements}}
## Placements
{{range .Placements}}- {{.Piece}} at frame {{.Frame}} ({{round .At}})
{{end}}{{end}}
## Systems
| System | Runs | Avg | Min | Max |
|--------|------|-----|-----|-----|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{end}}{{with .Storage}}
## Storage
- **Entities:** {{.TotalEntityCount}} in {{.ArchetypeCount}} archetypes
- **Singletons:** {{join .SingletonTypes}}
{{range .ArchetypeBreakdown}}- archetype {{.ID}}: {{.EntityCount}} x [{{join .ComponentTypes}}]
{{end}}{{end}}`

	fm := template.FuncMap{
		"join": func(s []string) string {
			return strings.Join(s, ", ")
		},
		"round": func(d time.Duration) time.Duration {
			return d.Round(time.Millisecond)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
