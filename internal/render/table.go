package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/thiagokokada/git-branches/internal/git"
)

const (
	shortHashLen = 10
	dateLayout   = "2006-01-02 15:04"
	currentMark  = "*"
)

var tableHeaders = []string{"", "BRANCH", "UPSTREAM", "COMMIT", "DATE", "AUTHOR", "SUBJECT"}

const (
	colMark = iota
	colName
	colUpstream
	colHash
)

func shortHash(h string) string {
	if len(h) > shortHashLen {
		return h[:shortHashLen]
	}
	return h
}

func tableRows(branches []git.Branch, current *git.Branch) [][]string {
	rows := make([][]string, 0, len(branches))
	for _, b := range branches {
		mark := ""
		if isCurrent(b, current) {
			mark = currentMark
		}
		date := ""
		if !b.Tip.Author.When.IsZero() {
			date = b.Tip.Author.When.Local().Format(dateLayout)
		}
		rows = append(rows, []string{
			mark,
			b.Name,
			b.Upstream,
			shortHash(b.Tip.Hash),
			date,
			b.Tip.Author.Name,
			b.Tip.Summary,
		})
	}
	return rows
}

func newRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func writeTable(w io.Writer, branches []git.Branch, current *git.Branch, opts Options) error {
	if len(branches) == 0 {
		return nil
	}
	r := newRenderer(w, opts.Color)
	rows := tableRows(branches, current)

	base := r.NewStyle().Padding(0, 1)
	header, border, cur, hash, remote := base, r.NewStyle(), base, base, base
	if opts.Color {
		p := opts.Theme.palette()
		header = base.Bold(true).Foreground(lipgloss.Color(p.header))
		border = border.Foreground(lipgloss.Color(p.border))
		cur = base.Bold(true).Foreground(lipgloss.Color(p.current))
		hash = base.Foreground(lipgloss.Color(p.hash))
		remote = base.Faint(true).Foreground(lipgloss.Color(p.remote))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		BorderColumn(false).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < 0 || row >= len(branches) {
				return base
			}
			switch {
			case rows[row][colMark] == currentMark && (col == colMark || col == colName):
				return cur
			case branches[row].Type == git.BranchRemote:
				return remote
			case col == colHash:
				return hash
			}
			return base
		})

	out := t.String()
	if !opts.Color {
		out = trimTrailingSpace(out)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
