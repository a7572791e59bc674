package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/charpick/internal/errmsg"
	"github.com/llehouerou/charpick/internal/logger"
	"github.com/llehouerou/charpick/internal/rickmorty"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search characters once and print the matches",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, err := logger.New(logger.Config{Level: cfg.Log.Level, Console: cmd.ErrOrStderr()})
		if err != nil {
			return fmt.Errorf("%s: %w", errmsg.OpLogOpen, err)
		}
		defer log.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		term := strings.Join(args, " ")
		log.Debug().Str("term", term).Str("api", cfg.API.BaseURL).Msg("searching")

		page, err := newClient(cfg).SearchCharacters(ctx, term)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			log.Debug().Err(err).Msg(errmsg.Format(errmsg.OpSearch, err))
			return errors.New(errmsg.Search(err))
		}
		return printPage(cmd, page)
	},
}

func printPage(cmd *cobra.Command, page *rickmorty.Page) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, c := range page.Characters {
		eps := humanize.Comma(int64(c.EpisodeCount)) + " episodes"
		if c.EpisodeCount == 1 {
			eps = "1 episode"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Status, c.Species, eps)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page.Count > len(page.Characters) {
		fmt.Fprintf(cmd.ErrOrStderr(), "showing %d of %s matches\n",
			len(page.Characters), humanize.Comma(int64(page.Count)))
	}
	return nil
}
