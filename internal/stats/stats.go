// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/session"
)

const sparkChars = " .:-=+*#%@"

// Compute derives the final statistics of a session.
func Compute(s *session.Session, elapsedSeconds int) model.Result {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	correct := s.CorrectWords()
	return model.Result{
		CorrectWords:   correct,
		ElapsedSeconds: elapsedSeconds,
		WPM:            WPM(correct, elapsedSeconds),
		Accuracy:       Accuracy(s.Keystrokes(), s.Mistakes()),
	}
}

// WPM normalizes correct words to a one-minute rate.
func WPM(correctWords, elapsedSeconds int) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	return float64(correctWords) / (float64(elapsedSeconds) / 60.0)
}

// Accuracy is the share of classified keystrokes that were correct.
func Accuracy(keystrokes, mistakes int) float64 {
	if keystrokes <= 0 {
		return 0
	}
	return float64(keystrokes-mistakes) / float64(keystrokes)
}

// FormatWPM renders a WPM value to one decimal place.
func FormatWPM(wpm float64) string {
	return fmt.Sprintf("%.1f WPM", wpm)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary of the sessions finished during this run.
func RenderSummary(w io.Writer, records []model.RunRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions finished.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	wpms := make([]float64, len(records))
	for i, r := range records {
		totalWPM += r.Result.WPM
		totalAcc += r.Result.Accuracy
		if r.Result.WPM > bestWPM {
			bestWPM = r.Result.WPM
		}
		wpms[i] = r.Result.WPM
	}
	count := float64(len(records))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(records)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.1f\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.1f\n", bestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.1f%%\n", (totalAcc/count)*100); err != nil {
		return err
	}
	if len(records) > 1 {
		if _, err := fmt.Fprintf(w, "Trend: [%s]\n", Sparkline(wpms)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	headers := []string{"#", "Mode", "Correct", "Time", "WPM", "Accuracy"}
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, RecordRow(i+1, r))
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RecordRow formats a run record as table cells.
func RecordRow(n int, r model.RunRecord) []string {
	return []string{
		fmt.Sprintf("%d", n),
		model.Preset{Mode: r.Mode, Target: r.Target}.String(),
		fmt.Sprintf("%d", r.Result.CorrectWords),
		fmt.Sprintf("%ds", r.Result.ElapsedSeconds),
		fmt.Sprintf("%.1f", r.Result.WPM),
		fmt.Sprintf("%.1f%%", r.Result.Accuracy*100),
	}
}
