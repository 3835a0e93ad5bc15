// Package report renders simulation results for a terminal.
package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/missionsim/pkg/simulator"
)

// Styles
type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	label       lipgloss.Style
	healthy     lipgloss.Style
	compromised lipgloss.Style
	muted       lipgloss.Style
	box         lipgloss.Style
	border      lipgloss.Style
	cell        lipgloss.Style
}

// Renderer formats results with styles bound to one output's color profile.
// Writing to a file or pipe yields plain text.
type Renderer struct {
	styles styles
}

// NewRenderer creates a renderer for w.
func NewRenderer(w io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{styles: styles{
		title: lr.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")),
		header: lr.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1),
		label: lr.NewStyle().
			Foreground(lipgloss.Color("#888888")),
		healthy: lr.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true),
		compromised: lr.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true),
		muted: lr.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		box: lr.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2),
		border: lr.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")),
		cell: lr.NewStyle().
			Padding(0, 1),
	}}
}

// Result renders one simulation: the score summary, the attack path, the
// explanation and the criticality ranking.
func (r *Renderer) Result(res *simulator.Result) string {
	s := r.styles
	var b strings.Builder

	b.WriteString(s.title.Render(fmt.Sprintf("Mission attack simulation: %s on %s", res.ScenarioType, res.TargetComponentID)))
	b.WriteString("\n\n")

	summary := strings.Join([]string{
		s.label.Render("Baseline score    ") + s.healthy.Render(formatScore(res.BaselineScore)),
		s.label.Render("Compromised score ") + s.compromised.Render(formatScore(res.CompromisedScore)),
		s.label.Render("Score delta       ") + formatDelta(res.ScoreDelta),
		s.label.Render("Affected          ") + strconv.Itoa(len(res.AffectedComponents)),
	}, "\n")
	b.WriteString(s.box.Render(summary))
	b.WriteString("\n\n")

	b.WriteString(s.header.Render("Attack path"))
	b.WriteString("\n")
	for _, step := range res.AttackPath {
		b.WriteString("  " + step + "\n")
	}
	b.WriteString("\n")
	b.WriteString(res.Explanation)
	b.WriteString("\n\n")

	b.WriteString(s.header.Render("Criticality ranking"))
	b.WriteString("\n")
	b.WriteString(r.Ranking(res.CriticalityRanking))
	b.WriteString("\n")

	return b.String()
}

// Ranking renders the criticality ranking as a table. Compromised rows are
// marked and highlighted.
func (r *Renderer) Ranking(entries []simulator.RankEntry) string {
	s := r.styles
	rows := make([][]string, len(entries))
	for i, e := range entries {
		state := "ok"
		if e.Affected {
			state = "COMPROMISED"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			e.ComponentID,
			e.ComponentName,
			e.ComponentType,
			strconv.FormatFloat(e.CriticalityScore, 'f', -1, 64),
			state,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		Headers("#", "ID", "Component", "Type", "Score", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header
			case row >= 0 && row < len(entries) && entries[row].Affected:
				return s.compromised.Padding(0, 1)
			default:
				return s.muted.Padding(0, 1)
			}
		})
	return t.String()
}

// BlastRadius renders one row per result, ordered from the largest score
// loss to the smallest. Equal losses keep the input order.
func (r *Renderer) BlastRadius(results []*simulator.Result) string {
	ordered := slices.Clone(results)
	slices.SortStableFunc(ordered, func(a, b *simulator.Result) int {
		switch {
		case a.ScoreDelta < b.ScoreDelta:
			return -1
		case a.ScoreDelta > b.ScoreDelta:
			return 1
		default:
			return 0
		}
	})

	rows := make([][]string, len(ordered))
	for i, res := range ordered {
		rows[i] = []string{
			res.TargetComponentID,
			strconv.Itoa(len(res.AffectedComponents)),
			formatScore(res.CompromisedScore),
			strconv.FormatFloat(res.ScoreDelta, 'f', 2, 64),
		}
	}

	s := r.styles
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		Headers("Target", "Affected", "Score", "Delta").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		}).
		String()
}

// Write renders res to w.
func Write(w io.Writer, res *simulator.Result) error {
	_, err := io.WriteString(w, NewRenderer(w).Result(res))
	return err
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func formatDelta(v float64) string {
	return fmt.Sprintf("%+.2f points", v)
}
