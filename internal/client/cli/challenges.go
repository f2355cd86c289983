package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/client/view"
)

func (a *App) ListChallenges(ctx context.Context) error {
	challenges, err := a.api.ListChallenges(ctx, a.session)
	if err != nil {
		return err
	}
	if len(challenges) == 0 {
		fmt.Fprintln(a.out, "No challenges yet. Start one with 'newchallenge'")
		return nil
	}
	for _, c := range challenges {
		fmt.Fprintln(a.out, view.ChallengeLine(c))
	}
	return nil
}

// ShowChallenge prints a challenge with its entries, highest day first.
func (a *App) ShowChallenge(ctx context.Context, args []string) error {
	id, err := needID(args, "challenge <id>")
	if err != nil {
		return err
	}

	c, err := a.api.GetChallenge(ctx, a.session, id)
	if err != nil {
		return err
	}
	entries, err := a.api.ChallengeEntries(ctx, a.session, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, view.ChallengeLine(*c))
	if c.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", c.Description)
	}
	fmt.Fprintf(a.out, "  started %s\n", c.StartDate.UTC().Format("2006-01-02"))

	view.SortByDayNumberDesc(entries)
	for _, e := range entries {
		fmt.Fprintln(a.out, "  "+view.EntryLine(e))
	}
	return nil
}

func (a *App) readChallengeInput(editing bool) (api.ChallengeInput, error) {
	var in api.ChallengeInput
	ask := func(prompt string) (string, error) {
		if editing {
			prompt += " (blank to keep)"
		}
		return getSimpleText(a.reader, prompt, a.out)
	}

	s, err := ask("Name")
	if err != nil {
		return in, err
	}
	in.Name = optional(s)

	s, err = ask("Category (" + strings.Join(api.Categories, ", ") + ")")
	if err != nil {
		return in, err
	}
	in.Category = optional(s)

	s, err = ask("Description")
	if err != nil {
		return in, err
	}
	in.Description = optional(s)

	s, err = ask("Duration in days")
	if err != nil {
		return in, err
	}
	if in.Duration, err = parseOptionalInt(s); err != nil {
		return in, err
	}

	s, err = ask("Start date YYYY-MM-DD (blank for today)")
	if err != nil {
		return in, err
	}
	if in.StartDate, err = parseDate(s); err != nil {
		return in, err
	}

	if editing {
		s, err = ask("Status (active/paused/completed)")
		if err != nil {
			return in, err
		}
		in.Status = optional(s)
	}

	return in, nil
}

func (a *App) AddChallenge(ctx context.Context) error {
	in, err := a.readChallengeInput(false)
	if err != nil {
		return err
	}

	c, err := a.api.CreateChallenge(ctx, a.session, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Challenge created: %s\n", view.ChallengeLine(*c))
	return nil
}

func (a *App) EditChallenge(ctx context.Context, args []string) error {
	id, err := needID(args, "editchallenge <id>")
	if err != nil {
		return err
	}

	cur, err := a.api.GetChallenge(ctx, a.session, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, view.ChallengeLine(*cur))

	in, err := a.readChallengeInput(true)
	if err != nil {
		return err
	}

	c, err := a.api.UpdateChallenge(ctx, a.session, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Challenge updated: %s\n", view.ChallengeLine(*c))
	return nil
}

// DeleteChallenge removes a challenge and, on the server, all of its entries.
func (a *App) DeleteChallenge(ctx context.Context, args []string) error {
	id, err := needID(args, "delchallenge <id>")
	if err != nil {
		return err
	}

	ok, err := a.confirm("Delete challenge " + id + " and all its entries?")
	if err != nil || !ok {
		return err
	}

	n, err := a.api.DeleteChallenge(ctx, a.session, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Challenge removed (%d entries deleted)\n", n)
	return nil
}
