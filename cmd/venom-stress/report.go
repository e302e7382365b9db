package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/snake"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	Games          int
	Config         snake.Config
	Seed           uint64
	MaxTicks       uint64
	GCPauseMetrics bool

	// Results
	GamesPlayed int
	Abandoned   int
	Interrupted int
	TotalTicks  uint64
	TotalTime   time.Duration
	TickTime    Stats
	Scores      IntStats
	Lengths     IntStats
	Reasons     map[string]int
	Systems     []SystemRow

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Record folds one game into the report. Games interrupted by the run
// deadline only contribute their ticks.
func (r *Report) Record(res loop.Result) {
	r.TotalTicks += res.Ticks
	if res.Quit {
		r.Interrupted++
		return
	}

	r.GamesPlayed++
	r.Scores.Add(res.Score)
	r.Lengths.Add(res.Length)

	if res.Terminal {
		r.Reasons[res.Reason.String()]++
	} else {
		r.Abandoned++
	}
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// IntStats tracks a running min/max/mean without keeping samples.
type IntStats struct {
	Min, Max int
	Count    int
	sum      int
}

func (s *IntStats) Add(v int) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	s.Count++
	s.sum += v
}

func (s IntStats) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.sum) / float64(s.Count)
}

// SystemRow is the per-system timing summed over every game.
type SystemRow struct {
	Name       string
	Executions int64
	Avg        time.Duration
	Max        time.Duration
}

type systemTotals struct {
	order []string
	rows  map[string]*SystemRow
	total map[string]time.Duration
}

func newSystemTotals() *systemTotals {
	return &systemTotals{
		rows:  make(map[string]*SystemRow),
		total: make(map[string]time.Duration),
	}
}

func (t *systemTotals) add(stats *loop.SchedulerStats) {
	if stats == nil {
		return
	}
	for _, sys := range stats.Systems {
		row, ok := t.rows[sys.Name]
		if !ok {
			row = &SystemRow{Name: sys.Name}
			t.rows[sys.Name] = row
			t.order = append(t.order, sys.Name)
		}
		row.Executions += sys.ExecutionCount
		row.Max = max(row.Max, sys.MaxDuration)
		t.total[sys.Name] += sys.TotalDuration
	}
}

func (t *systemTotals) list() []SystemRow {
	out := make([]SystemRow, 0, len(t.order))
	for _, name := range t.order {
		row := *t.rows[name]
		if row.Executions > 0 {
			row.Avg = t.total[name] / time.Duration(row.Executions)
		}
		out = append(out, row)
	}
	return out
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Snake Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Game Limit:** {{if .Games}}{{.Games}}{{else}}none{{end}}
- **Board:** {{.Config.Width}}x{{.Config.Height}} px, {{.Config.BlockSize}} px blocks
- **First Seed:** {{.Seed}}
- **Tick Cap Per Game:** {{.MaxTicks}}

## Games
- **Played:** {{.GamesPlayed}} ({{.Abandoned}} abandoned at the tick cap)
- **Interrupted By Time Limit:** {{.Interrupted}}
- **Score:** avg {{printf "%.2f" .Scores.Avg}}, min {{.Scores.Min}}, max {{.Scores.Max}}
- **Final Length:** avg {{printf "%.2f" .Lengths.Avg}}, min {{.Lengths.Min}}, max {{.Lengths.Max}}
{{- range $reason := sortedKeys .Reasons}}
- **Ended by {{$reason}}:** {{index $.Reasons $reason}}
{{- end}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
{{range .Systems}}
- {{.Name}}: {{.Executions}} runs, avg {{.Avg}}, max {{.Max}}
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"sortedKeys": func(m map[string]int) []string {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			return keys
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
