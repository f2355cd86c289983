package view

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/microcosm-cc/bluemonday"
)

var stripTags = bluemonday.StrictPolicy()

// PlainText strips markup from stored rich-text content for terminal output.
func PlainText(content string) string {
	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(content)))
}

func FormatTimeSpent(t api.TimeSpent) string {
	if t.Unit == "hours" {
		return fmt.Sprintf("%gh", t.Amount)
	}
	return fmt.Sprintf("%gm", t.Amount)
}

func EntryLine(e api.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %-10s %s", e.Date.UTC().Format("2006-01-02"), e.Category, e.Topic)
	if e.ChallengeID != "" && e.ChallengeID != api.NoChallenge {
		fmt.Fprintf(&b, " (day %d)", e.DayNumber)
	}
	fmt.Fprintf(&b, " [%s]", FormatTimeSpent(e.TimeSpent))
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, " #%s", strings.Join(e.Tags, " #"))
	}
	if e.Status != "published" {
		fmt.Fprintf(&b, " <%s>", e.Status)
	}
	fmt.Fprintf(&b, "  id=%s", e.ID)
	return b.String()
}

func ChallengeLine(c api.Challenge) string {
	return fmt.Sprintf("%-28s %-10s %s day %d/%d  %s  id=%s",
		c.Name, c.Status, ProgressBar(c.Progress, 20), c.DaysElapsed, c.Duration, c.Category, c.ID)
}

func WriteEntry(w io.Writer, e api.Entry) {
	fmt.Fprintln(w, EntryLine(e))
	if e.KeyTakeaway != "" {
		fmt.Fprintf(w, "  Takeaway: %s\n", e.KeyTakeaway)
	}
	if body := PlainText(e.Content); body != "" {
		fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(body, "\n", "\n  "))
	}
	if e.Doubts != "" {
		fmt.Fprintf(w, "  Doubts: %s\n", e.Doubts)
	}
	if e.Views > 0 {
		fmt.Fprintf(w, "  Views: %d\n", e.Views)
	}
}

func WriteStats(w io.Writer, s api.Stats) {
	fmt.Fprintf(w, "Current streak: %d days (longest %d)\n", s.CurrentStreak, s.LongestStreak)
	fmt.Fprintf(w, "Entries: %d  Hours: %.1f  Topics: %d\n", s.TotalEntriesCreated, s.TotalHoursLearned, s.TopicsCount)
	if s.LastEntryDate != nil {
		fmt.Fprintf(w, "Last entry: %s\n", s.LastEntryDate.UTC().Format("2006-01-02"))
	}
}

func WriteDashboard(w io.Writer, d Dashboard) {
	WriteStats(w, d.Stats)

	fmt.Fprintln(w, "\nActive challenges:")
	if len(d.ActiveChallenges) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, c := range d.ActiveChallenges {
		fmt.Fprintln(w, "  "+ChallengeLine(c))
	}

	fmt.Fprintln(w, "\nRecent entries:")
	if len(d.RecentEntries) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, e := range d.RecentEntries {
		fmt.Fprintln(w, "  "+EntryLine(e))
	}
}

func WritePortfolio(w io.Writer, p api.Portfolio) {
	fmt.Fprintf(w, "%s's learning journey\n", p.User.Name)
	WriteStats(w, p.Stats)
	for _, g := range Timeline(p.Entries) {
		fmt.Fprintf(w, "\n== %s ==\n", g.Label)
		for _, e := range g.Entries {
			fmt.Fprintln(w, "  "+EntryLine(e))
			if e.KeyTakeaway != "" {
				fmt.Fprintf(w, "    %s\n", e.KeyTakeaway)
			}
		}
	}
}
