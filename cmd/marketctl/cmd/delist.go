package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDelistCmd(opts *options) *cobra.Command {
	var restore bool
	c := &cobra.Command{
		Use:   "delist <market> <ticker>",
		Short: "Hide a company from its market",
		Long: `delist marks a stored company as inactive so it no longer appears in its
market. The row is kept; --restore lists it again. The cached entries of the
market are removed when REDIS_HOST is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			market, ticker := args[0], args[1]

			s, err := openStore(ctx, opts.logger(cmd), false)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.repo.SetCompanyActive(ctx, market, ticker, restore); err != nil {
				return err
			}
			s.invalidate(ctx, market)

			state := "delisted"
			if restore {
				state = "listed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", market, ticker, state)
			return nil
		},
	}
	c.Flags().BoolVar(&restore, "restore", false, "list the company again")
	return c
}
