package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typesprint/internal/session"
)

// visibleRows is how many wrapped rows the typing view shows at once.
const visibleRows = 3

type styledRune struct {
	s     string
	width int
}

type styledWord struct {
	runes []styledRune
	width int
}

func buildStyledWords(s *session.Session) []styledWord {
	cursor := s.Cursor()
	finished := s.Status() == session.Finished
	words := s.Words()
	out := make([]styledWord, 0, len(words))
	for wi, w := range words {
		sw := styledWord{runes: make([]styledRune, 0, len(w.Letters))}
		for li, l := range w.Letters {
			displayed := l.Expected
			if displayed == session.Space {
				displayed = ' '
			}
			style := pendingStyle
			switch l.State {
			case session.Correct:
				style = correctStyle
			case session.Incorrect:
				style = incorrectStyle
				if l.Expected == session.Space {
					displayed = '•'
				}
			default:
				if wi == cursor.Word && l.Expected != session.Space {
					style = currentWordStyle
				}
			}
			if !finished && wi == cursor.Word && li == cursor.Letter {
				style = style.Underline(true)
			}
			width := runewidth.RuneWidth(displayed)
			sw.runes = append(sw.runes, styledRune{s: style.Render(string(displayed)), width: width})
			sw.width += width
		}
		out = append(out, sw)
	}
	return out
}

// layoutRows assigns each word a row so that no row exceeds width. A word
// wider than width gets a row of its own.
func layoutRows(words []styledWord, width int) []int {
	rows := make([]int, len(words))
	row := 0
	lineWidth := 0
	for i, w := range words {
		if lineWidth > 0 && width > 0 && lineWidth+w.width > width {
			row++
			lineWidth = 0
		}
		rows[i] = row
		lineWidth += w.width
	}
	return rows
}

// rowWindow returns the half-open range of rows to draw: the row above the
// cursor's row and the rows that follow it.
func rowWindow(currentRow, lastRow int) (int, int) {
	first := max(currentRow-1, 0)
	end := min(first+visibleRows, lastRow+1)
	return first, end
}

func renderRows(words []styledWord, rows []int, first, end int) string {
	var out strings.Builder
	current := first
	for i, w := range words {
		if rows[i] < first || rows[i] >= end {
			continue
		}
		if rows[i] != current {
			out.WriteRune('\n')
			current = rows[i]
		}
		for _, r := range w.runes {
			out.WriteString(r.s)
		}
	}
	return out.String()
}

func renderWords(s *session.Session, width int) string {
	words := buildStyledWords(s)
	if len(words) == 0 {
		return ""
	}
	rows := layoutRows(words, width)
	first, end := rowWindow(rows[s.Cursor().Word], rows[len(rows)-1])
	return renderRows(words, rows, first, end)
}
