package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	finance "github.com/felipet/finance-api"
)

func newMarketsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List the markets of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := opts.usecase(cmd)
			if err != nil {
				return err
			}
			names, err := uc.ListMarkets(commandContext(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newTickersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tickers <market>",
		Short: "List the tickers of a market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.market(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ticker := range m.ListTickers() {
				fmt.Fprintln(out, ticker)
			}
			return nil
		},
	}
}

func newCompaniesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "companies <market>",
		Short: "List the companies of a market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.market(cmd, args[0])
			if err != nil {
				return err
			}
			printCompanies(cmd, m.Companies(), false)
			return nil
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	var debug bool
	c := &cobra.Command{
		Use:   "search <market> <pattern>",
		Short: "Find companies whose name matches a regular expression",
		Example: `  marketctl search IBEX35 Banco
  marketctl search IBEX35 '^B' --debug
  marketctl search -i IBEX35 repsol`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.market(cmd, args[0])
			if err != nil {
				return err
			}
			companies, ok := m.StockByName(args[1])
			if !ok {
				return fmt.Errorf("no company in %s matches %q", m.MarketName(), args[1])
			}
			printCompanies(cmd, companies, debug)
			return nil
		},
	}
	c.Flags().BoolVar(&debug, "debug", false, "print every field")
	return c
}

func newShowCmd(opts *options) *cobra.Command {
	var debug bool
	c := &cobra.Command{
		Use:   "show <market> <ticker>",
		Short: "Show the company listed under a ticker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.market(cmd, args[0])
			if err != nil {
				return err
			}
			company, ok := m.StockByTicker(args[1])
			if !ok {
				return fmt.Errorf("%s has no ticker %q", m.MarketName(), args[1])
			}
			printCompanies(cmd, []finance.Company{company}, debug)
			return nil
		},
	}
	c.Flags().BoolVar(&debug, "debug", false, "print every field")
	return c
}

// printCompanies writes one company per line in its display or debug form.
func printCompanies(cmd *cobra.Command, companies []finance.Company, debug bool) {
	out := cmd.OutOrStdout()
	for _, c := range companies {
		v := finance.View{Company: c}
		if debug {
			fmt.Fprintf(out, "%#v\n", v)
			continue
		}
		fmt.Fprintf(out, "%v\n", v)
	}
}
