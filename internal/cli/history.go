package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectn/internal/api/response"
	"github.com/mcoot/connectn/internal/config"
	"github.com/mcoot/connectn/internal/model"
	"github.com/mcoot/connectn/internal/services/history"
)

// historySource reads finished matches either from storage or from a server
type historySource interface {
	List(ctx context.Context, limit int) (response.MatchList, error)
	Get(ctx context.Context, id string) (response.Match, error)
	Stats(ctx context.Context) (response.Stats, error)
	Delete(ctx context.Context, id string) error
}

// localHistory reads the configured storage directly
type localHistory struct {
	service history.ServiceInterface
}

func (h *localHistory) List(ctx context.Context, limit int) (response.MatchList, error) {
	matches, err := h.service.List(ctx, limit)
	if err != nil {
		return response.MatchList{}, err
	}
	return response.MatchListFromModel(matches), nil
}

func (h *localHistory) Get(ctx context.Context, id string) (response.Match, error) {
	match, err := h.service.Get(ctx, model.MatchID(id))
	if err != nil {
		return response.Match{}, err
	}
	return response.MatchFromModel(match), nil
}

func (h *localHistory) Stats(ctx context.Context) (response.Stats, error) {
	stats, err := h.service.Stats(ctx)
	if err != nil {
		return response.Stats{}, err
	}
	return response.StatsFromModel(stats), nil
}

func (h *localHistory) Delete(ctx context.Context, id string) error {
	return h.service.Delete(ctx, model.MatchID(id))
}

// remoteHistory queries a running "connectn serve"
type remoteHistory struct {
	client *Client
}

func (h *remoteHistory) List(ctx context.Context, limit int) (response.MatchList, error) {
	path := "/api/v1/matches"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var result response.MatchList
	err := h.client.Get(ctx, path, &result)
	return result, err
}

func (h *remoteHistory) Get(ctx context.Context, id string) (response.Match, error) {
	var result response.Match
	err := h.client.Get(ctx, "/api/v1/matches/"+url.PathEscape(id), &result)
	return result, err
}

func (h *remoteHistory) Stats(ctx context.Context) (response.Stats, error) {
	var result response.Stats
	err := h.client.Get(ctx, "/api/v1/stats", &result)
	return result, err
}

func (h *remoteHistory) Delete(ctx context.Context, id string) error {
	return h.client.Delete(ctx, "/api/v1/matches/"+url.PathEscape(id))
}

// openHistory picks the server when --server is set, local storage otherwise.
// The returned close function releases the storage connection.
func openHistory() (historySource, func(), error) {
	if opts.ServerURL != "" {
		return &remoteHistory{client: NewClient(opts.ServerURL)}, func() {}, nil
	}

	if cfg.StorageType == config.StorageTypeMemory {
		logger.Warn("memory storage only holds matches from this process; use redis storage or --server to read earlier matches")
	}

	app, err := newApp(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return &localHistory{service: app.HistoryService}, func() { _ = app.Close() }, nil
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently finished matches",
		Long: `List recently finished matches, newest first. Matches are read from the
configured storage, or from a running "connectn serve" when --server is given.

The default memory storage lives only as long as one process, so matches from
an earlier "connectn play" are only visible when both commands use redis
storage, directly or through --server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, closeSource, err := openHistory()
			if err != nil {
				return err
			}
			defer closeSource()

			result, err := source.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			NewOutput(opts.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", opts.ServerURL, "History server URL (env: CONNECTN_SERVER)")
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Maximum number of matches to list")

	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryStatsCmd())
	cmd.AddCommand(newHistoryDeleteCmd())

	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, closeSource, err := openHistory()
			if err != nil {
				return err
			}
			defer closeSource()

			result, err := source.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(opts.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newHistoryStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize outcomes of every recorded match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, closeSource, err := openHistory()
			if err != nil {
				return err
			}
			defer closeSource()

			result, err := source.Stats(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(opts.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a match from the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, closeSource, err := openHistory()
			if err != nil {
				return err
			}
			defer closeSource()

			if err := source.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted match %s\n", args[0])
			return err
		},
	}
}
