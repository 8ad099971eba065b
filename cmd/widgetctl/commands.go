package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/botapi"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/identity"
	"github.com/MuhamadAgungGumelar/ask-assistant-widget/internal/core/widget"
)

type rootOptions struct {
	baseURL string
	alias   string
	botID   string
	timeout time.Duration
	debug   bool
	asJSON  bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "widgetctl",
		Short: "Drive an Ask the Assistant widget from the terminal",
		Long: `widgetctl runs the widget coordinators in-process against the bot platform.

Available subcommands:
  settings - Resolve the bot and show its tabs and theme
  ask      - Ask a question, optionally scoped to a demo or document
  price    - Walk the pricing questions and compute an estimate
  meeting  - Show scheduling details and write a QR code
  theme    - Print the composed theme as CSS`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", os.Getenv("BOT_API_BASE_URL"), "Bot platform base URL (or set BOT_API_BASE_URL)")
	root.PersistentFlags().StringVar(&opts.alias, "alias", os.Getenv("DEFAULT_ALIAS"), "Bot alias")
	root.PersistentFlags().StringVar(&opts.botID, "bot-id", "", "Bot ID (wins over --alias)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Request and print the answer debug payload")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print JSON instead of text")

	root.AddCommand(
		newSettingsCmd(opts),
		newAskCmd(opts),
		newPriceCmd(opts),
		newMeetingCmd(opts),
		newThemeCmd(opts),
	)
	return root
}

// start resolves the bot and loads its settings and brand.
func (o *rootOptions) start(ctx context.Context) (*widget.App, error) {
	if o.baseURL == "" {
		return nil, fmt.Errorf("--base-url or BOT_API_BASE_URL is required")
	}
	client := botapi.NewClient(o.baseURL, o.timeout)
	app := widget.NewApp(client, widget.Options{AskTimeout: o.timeout, Debug: o.debug})

	if err := app.Start(ctx, identity.Inputs{BotIDFromURL: o.botID, AliasFromURL: o.alias}, widget.Flags{}); err != nil {
		return nil, err
	}
	if !app.Resolved() {
		return nil, fmt.Errorf("no bot selected: pass --alias or --bot-id")
	}
	return app, nil
}

func (o *rootOptions) print(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if o.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Resolve the bot and show its settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.start(cmd.Context())
			if err != nil {
				return err
			}
			state := app.Snapshot().Public()
			return opts.print(cmd, state, func(w io.Writer) {
				fmt.Fprintf(w, "bot:      %s (%s)\n", state.Identity.BotID, state.Settings.Alias)
				fmt.Fprintf(w, "session:  %s\n", state.Identity.SessionID)
				fmt.Fprintf(w, "visitor:  %s\n", state.Identity.VisitorID)
				labels := make([]string, 0, len(state.Tabs))
				for _, t := range state.Tabs {
					labels = append(labels, t.Label)
				}
				fmt.Fprintf(w, "tabs:     %s\n", strings.Join(labels, ", "))
				if state.Settings.WelcomeMessage != "" {
					fmt.Fprintf(w, "welcome:  %s\n", state.Settings.WelcomeMessage)
				}
			})
		},
	}
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	var demoID, docID, itemURL string

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask the assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.start(cmd.Context())
			if err != nil {
				return err
			}
			if demoID != "" || docID != "" {
				item := botapi.Item{ID: demoID, Kind: botapi.KindDemo, Title: demoID, URL: itemURL}
				if docID != "" {
					item = botapi.Item{ID: docID, Kind: botapi.KindDoc, Title: docID, URL: itemURL}
				}
				if _, err := app.OpenItem(cmd.Context(), item); err != nil {
					return err
				}
			}

			answer, err := app.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return opts.print(cmd, answer, func(w io.Writer) {
				fmt.Fprintln(w, answer.Text)
				for _, it := range answer.Items {
					fmt.Fprintf(w, "  - [%s] %s %s\n", it.Kind, it.Title, it.URL)
				}
				if len(answer.Debug) > 0 {
					fmt.Fprintf(w, "debug: %s\n", answer.Debug)
				}
			})
		},
	}
	cmd.Flags().StringVar(&demoID, "demo", "", "Scope the question to this demo id")
	cmd.Flags().StringVar(&docID, "doc", "", "Scope the question to this document id")
	cmd.Flags().StringVar(&itemURL, "url", "", "URL of the scoped item")
	return cmd
}

func newPriceCmd(opts *rootOptions) *cobra.Command {
	var answers []string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Answer pricing questions and compute an estimate",
		Long: `Loads the pricing questions and applies each --answer key=value in order.
Multi-select questions toggle, so repeat --answer to select several values.
When every required question is answered the estimate is computed,
otherwise the next question is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.start(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := app.LoadPricing(cmd.Context()); err != nil {
				return err
			}
			for _, a := range answers {
				key, value, ok := strings.Cut(a, "=")
				if !ok {
					return fmt.Errorf("answer %q must look like key=value", a)
				}
				if _, err := app.SetPriceAnswer(strings.TrimSpace(key), value); err != nil {
					return fmt.Errorf("answer %s: %w", key, err)
				}
			}

			p := app.Pricing()
			if p.AllRequiredAnswered() {
				if p, err = app.ComputeEstimate(cmd.Context()); err != nil {
					return err
				}
			}
			return opts.print(cmd, p, func(w io.Writer) { printPricing(w, p) })
		},
	}
	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "Answer as key=value (repeatable)")
	return cmd
}

func printPricing(w io.Writer, p *widget.Pricing) {
	switch p.Phase {
	case widget.PhaseEstimated:
		e := p.Estimate
		fmt.Fprintf(w, "Estimate: %s %.0f - %.0f\n", e.Currency, e.Min, e.Max)
		for _, li := range e.LineItems {
			fmt.Fprintf(w, "  %s: %.0f - %.0f\n", li.Label, li.Min, li.Max)
		}
	case widget.PhaseCustomQuote:
		fmt.Fprintln(w, "This configuration needs a custom quote.")
	case widget.PhaseError:
		fmt.Fprintln(w, p.Error)
	default:
		if q := p.NextQuestion(); q != nil {
			fmt.Fprintf(w, "Next question (%s): %s\n", q.Key, q.Prompt)
			for _, o := range q.Options {
				fmt.Fprintf(w, "  %s  %s\n", o.Key, o.Label)
			}
		}
	}
}

func newMeetingCmd(opts *rootOptions) *cobra.Command {
	var qrPath string
	var qrSize int

	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Show scheduling details",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.start(cmd.Context())
			if err != nil {
				return err
			}
			m, err := app.LoadMeeting(cmd.Context())
			if err != nil {
				return err
			}
			if qrPath != "" {
				png, err := app.MeetingQR(qrSize)
				if err != nil {
					return err
				}
				if err := os.WriteFile(qrPath, png, 0o644); err != nil {
					return fmt.Errorf("write qr code: %w", err)
				}
			}
			return opts.print(cmd, m, func(w io.Writer) {
				fmt.Fprintln(w, m.Agent.ScheduleHeader)
				fmt.Fprintf(w, "%s: %s\n", m.Agent.CalendarLinkType, m.Agent.CalendarLink)
				if qrPath != "" {
					fmt.Fprintf(w, "QR code written to %s\n", qrPath)
				}
			})
		},
	}
	cmd.Flags().StringVar(&qrPath, "qr", "", "Write a PNG QR code of the calendar link to this file")
	cmd.Flags().IntVar(&qrSize, "qr-size", 256, "QR code size in pixels")
	return cmd
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Print the composed theme as CSS",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.start(cmd.Context())
			if err != nil {
				return err
			}
			vars := app.Theme()
			return opts.print(cmd, vars.Map(), func(w io.Writer) {
				fmt.Fprint(w, vars.CSS(":root"))
			})
		},
	}
}
