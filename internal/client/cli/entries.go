package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/client/view"
)

// createFile is a test seam for os.Create.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// now is a test seam for the clock.
var now = time.Now

func needID(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return args[0], nil
}

// parseFilter reads "[-c <category>] [search words...]".
func parseFilter(args []string) view.Filter {
	var f view.Filter
	if len(args) >= 2 && args[0] == "-c" {
		f.Category = args[1]
		args = args[2:]
	}
	f.Search = strings.Join(args, " ")
	return f
}

func (a *App) ListEntries(ctx context.Context, args []string) error {
	entries, err := a.api.ListEntries(ctx, a.session)
	if err != nil {
		return err
	}

	entries = view.FilterEntries(entries, parseFilter(args))
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries found")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(a.out, view.EntryLine(e))
	}
	return nil
}

func (a *App) ShowEntry(ctx context.Context, args []string) error {
	id, err := needID(args, "show <id>")
	if err != nil {
		return err
	}

	e, err := a.api.GetEntry(ctx, a.session, id)
	if err != nil {
		return err
	}
	view.WriteEntry(a.out, *e)
	return nil
}

// readEntryInput prompts for every entry field. Blank answers leave the
// field unset, which means "keep" on edit and "server default" on create.
func (a *App) readEntryInput(ctx context.Context, editing bool) (api.EntryInput, error) {
	var in api.EntryInput
	ask := func(prompt string) (string, error) {
		if editing {
			prompt += " (blank to keep)"
		}
		return getSimpleText(a.reader, prompt, a.out)
	}

	s, err := ask("Topic")
	if err != nil {
		return in, err
	}
	in.Topic = optional(s)

	s, err = ask("Category (" + strings.Join(api.Categories, ", ") + ")")
	if err != nil {
		return in, err
	}
	in.Category = optional(s)

	s, err = ask("Date YYYY-MM-DD (blank for today)")
	if err != nil {
		return in, err
	}
	if in.Date, err = parseDate(s); err != nil {
		return in, err
	}

	s, err = getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return in, err
	}
	in.Content = optional(s)

	s, err = ask("Key takeaway")
	if err != nil {
		return in, err
	}
	in.KeyTakeaway = optional(s)

	s, err = ask("Doubts")
	if err != nil {
		return in, err
	}
	in.Doubts = optional(s)

	s, err = ask("Time spent, e.g. 45m or 1.5h")
	if err != nil {
		return in, err
	}
	if in.TimeSpent, err = parseTimeSpent(s); err != nil {
		return in, err
	}

	if err := a.askChallenge(ctx, &in, ask); err != nil {
		return in, err
	}

	s, err = ask("Tags, comma separated")
	if err != nil {
		return in, err
	}
	in.Tags = parseTags(s)

	s, err = ask("Status (published/draft)")
	if err != nil {
		return in, err
	}
	in.Status = optional(s)

	return in, nil
}

func (a *App) askChallenge(ctx context.Context, in *api.EntryInput, ask func(string) (string, error)) error {
	challenges, err := a.api.ListChallenges(ctx, a.session)
	if err != nil {
		return err
	}
	if len(challenges) == 0 {
		return nil
	}

	for _, c := range challenges {
		if c.Status == "active" {
			fmt.Fprintln(a.out, "  "+view.ChallengeLine(c))
		}
	}
	s, err := ask("Challenge id (\"" + api.NoChallenge + "\" to detach)")
	if err != nil {
		return err
	}
	in.ChallengeID = optional(s)
	if in.ChallengeID == nil || *in.ChallengeID == api.NoChallenge {
		return nil
	}

	entries, err := a.api.ListEntries(ctx, a.session)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "This will be day %d\n", view.NextDayNumber(entries, *in.ChallengeID))
	return nil
}

// parseTimeSpent accepts "45", "45m" or "1.5h". Blank input is not supplied.
func parseTimeSpent(s string) (*api.TimeSpent, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, nil
	}

	unit := "minutes"
	switch {
	case strings.HasSuffix(s, "h"):
		unit = "hours"
		s = strings.TrimSuffix(s, "h")
	case strings.HasSuffix(s, "m"):
		s = strings.TrimSuffix(s, "m")
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount < 0 {
		return nil, fmt.Errorf("invalid time spent %q", s)
	}
	return &api.TimeSpent{Amount: amount, Unit: unit}, nil
}

func (a *App) AddEntry(ctx context.Context) error {
	in, err := a.readEntryInput(ctx, false)
	if err != nil {
		return err
	}

	e, err := a.api.CreateEntry(ctx, a.session, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Entry saved: %s\n", view.EntryLine(*e))
	return nil
}

func (a *App) EditEntry(ctx context.Context, args []string) error {
	id, err := needID(args, "edit <id>")
	if err != nil {
		return err
	}

	cur, err := a.api.GetEntry(ctx, a.session, id)
	if err != nil {
		return err
	}
	view.WriteEntry(a.out, *cur)

	in, err := a.readEntryInput(ctx, true)
	if err != nil {
		return err
	}

	e, err := a.api.UpdateEntry(ctx, a.session, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Entry updated: %s\n", view.EntryLine(*e))
	return nil
}

func (a *App) confirm(prompt string) (bool, error) {
	s, err := getSimpleText(a.reader, prompt+" (y/N)", a.out)
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}

func (a *App) DeleteEntry(ctx context.Context, args []string) error {
	id, err := needID(args, "delete <id>")
	if err != nil {
		return err
	}

	ok, err := a.confirm("Delete entry " + id + "?")
	if err != nil || !ok {
		return err
	}

	if err := a.api.DeleteEntry(ctx, a.session, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Entry removed")
	return nil
}

// Export downloads all entries as csv or xlsx into a local file.
func (a *App) Export(ctx context.Context, args []string) error {
	format := "xlsx"
	if len(args) > 0 {
		format = strings.ToLower(args[0])
	}
	name := fmt.Sprintf("devlog-entries-%s.%s", now().Format("2006-01-02"), format)
	if len(args) > 1 {
		name = args[1]
	}

	f, err := createFile(name)
	if err != nil {
		return err
	}

	if err := a.api.Export(ctx, a.session, format, f); err != nil {
		f.Close()
		_ = os.Remove(name)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported to %s\n", name)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s, err := a.api.Stats(ctx, a.session)
	if err != nil {
		return err
	}
	view.WriteStats(a.out, *s)
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	s, err := a.api.Stats(ctx, a.session)
	if err != nil {
		return err
	}
	challenges, err := a.api.ListChallenges(ctx, a.session)
	if err != nil {
		return err
	}
	entries, err := a.api.ListEntries(ctx, a.session)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Hi, %s\n", a.session.User.Name)
	view.WriteDashboard(a.out, view.BuildDashboard(*s, challenges, entries))
	return nil
}

// Portfolio prints a user's public timeline. Without an argument the current
// user's own portfolio is shown; with an entry id that single published entry
// is opened, which counts as a view.
func (a *App) Portfolio(ctx context.Context, args []string) error {
	if len(args) == 2 {
		e, err := a.api.PortfolioEntry(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		view.WriteEntry(a.out, *e)
		return nil
	}

	var userID string
	switch {
	case len(args) == 1:
		userID = args[0]
	case len(args) == 0 && a.isLoggedIn():
		userID = a.session.User.ID
	default:
		return fmt.Errorf("usage: portfolio <userId> [entryId]")
	}

	p, err := a.api.Portfolio(ctx, userID)
	if err != nil {
		return err
	}
	view.WritePortfolio(a.out, *p)
	return nil
}
