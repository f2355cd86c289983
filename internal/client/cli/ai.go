package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/devlog/internal/client/view"
)

// Takeaway asks the assistant to summarize an entry's content, or freshly
// typed text when no entry id is given.
func (a *App) Takeaway(ctx context.Context, args []string) error {
	var content string
	if len(args) == 1 {
		e, err := a.api.GetEntry(ctx, a.session, args[0])
		if err != nil {
			return err
		}
		content = view.PlainText(e.Content)
	} else {
		s, err := getMultiline(a.reader, "Paste what you learned", a.out)
		if err != nil {
			return err
		}
		content = s
	}

	t, err := a.api.Takeaway(ctx, a.session, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Takeaway: %s\n", t)
	return nil
}

func (a *App) Suggest(ctx context.Context) error {
	topic, err := getSimpleText(a.reader, "Current topic", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}

	ss, err := a.api.Suggestions(ctx, a.session, topic, category)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Try next:")
	for i, s := range ss {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, s)
	}
	return nil
}

func (a *App) DeepDive(ctx context.Context, args []string) error {
	topic := strings.Join(args, " ")
	if topic == "" {
		return fmt.Errorf("usage: deepdive <topic>")
	}

	d, err := a.api.DeepDive(ctx, a.session, topic)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, d.Text)
	if len(d.Sources) > 0 {
		fmt.Fprintln(a.out, "Sources:")
		for _, s := range d.Sources {
			fmt.Fprintf(a.out, "  - %s %s\n", s.Title, s.URI)
		}
	}
	return nil
}
