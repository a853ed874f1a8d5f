package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectn/internal/api/response"
	"github.com/mcoot/connectn/internal/console"
	"github.com/mcoot/connectn/internal/model"
)

// playOptions holds the rule overrides given to "play"
type playOptions struct {
	width       int
	height      int
	players     int
	first       int
	line        int
	randomFirst bool
	highlight   bool
}

// apply overrides the configured rules with the flags that were set
func (p *playOptions) apply(cmd *cobra.Command, rules model.Rules) model.Rules {
	flags := cmd.Flags()
	if flags.Changed("width") {
		rules.Width = p.width
	}
	if flags.Changed("height") {
		rules.Height = p.height
	}
	if flags.Changed("players") {
		rules.Players = p.players
	}
	if flags.Changed("first") {
		rules.FirstPlayer = p.first - 1
	}
	if flags.Changed("line") {
		rules.WinLineSize = p.line
	}
	return rules
}

func newPlayCmd() *cobra.Command {
	var po playOptions

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match on the console",
		Long: `Play a match on the console. Players take turns entering a column number;
"x" quits the match. The finished match is saved to the history store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := po.apply(cmd, cfg.Rules)
			if err := rules.Validate(); err != nil {
				return err
			}

			app, err := newApp(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if po.randomFirst {
				rules = app.RandomFirstPlayer(rules)
			}

			input := console.NewInput(cmd.InOrStdin(), cmd.OutOrStdout(), console.DefaultPalette)
			defer func() { _ = input.Close() }()
			renderer := console.NewRenderer(cmd.OutOrStdout(), console.DefaultPalette)
			renderer.Highlight = po.highlight

			controller, err := app.NewMatch(rules, input, renderer)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			record, err := controller.Run(ctx)
			if err != nil {
				return err
			}

			if opts.Output == "json" {
				NewOutput(opts.Output, cmd.OutOrStdout()).Print(response.MatchFromModel(record))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&po.width, "width", 0, "Number of columns (default from config)")
	cmd.Flags().IntVar(&po.height, "height", 0, "Number of rows (default from config)")
	cmd.Flags().IntVar(&po.players, "players", 0, "Number of players (default from config)")
	cmd.Flags().IntVar(&po.first, "first", 0, "Player number to move first, starting at 1")
	cmd.Flags().IntVar(&po.line, "line", 0, "Pieces in a row needed to win (default from config)")
	cmd.Flags().BoolVar(&po.randomFirst, "random-first", false, "Pick the first player at random")
	cmd.Flags().BoolVar(&po.highlight, "highlight", false, "Show the winning line in lowercase")

	return cmd
}
