// Package cmd implements the marketctl commands.
package cmd

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	finance "github.com/felipet/finance-api"
	"github.com/felipet/finance-api/internal/feature/market/adapters"
	"github.com/felipet/finance-api/internal/feature/market/domain/entity"
	"github.com/felipet/finance-api/internal/feature/market/usecase"
)

// options holds the flags shared by every command.
type options struct {
	catalogPath string
	ignoreCase  bool
	verbose     bool
}

// NewRootCmd returns the marketctl root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "marketctl",
		Short: "Query and seed stock market catalogs",
		Long: `marketctl reads a YAML market catalog and answers the same questions as the
HTTP API: which markets exist, which companies they list, and which company
a name pattern or ticker refers to.

Commands:
    markets                      - list market names
    tickers   <market>           - list the tickers of a market
    companies <market>           - list the companies of a market
    search    <market> <pattern> - find companies by name (Go regular expression)
    show      <market> <ticker>  - show one company
    seed                         - load the catalog into the database
    delist    <market> <ticker>  - hide a stored company from its market`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; the environment may already hold everything.
			if err := godotenv.Load(); err != nil && opts.verbose {
				cmd.PrintErrln("Warning: .env file not found, using environment variables")
			}
			if !cmd.Flags().Changed("catalog") {
				if v := os.Getenv("CATALOG_PATH"); v != "" {
					opts.catalogPath = v
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "catalog.yaml", "market catalog file (default from CATALOG_PATH)")
	root.PersistentFlags().BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "match company names case-insensitively")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newMarketsCmd(opts),
		newTickersCmd(opts),
		newCompaniesCmd(opts),
		newSearchCmd(opts),
		newShowCmd(opts),
		newSeedCmd(opts),
		newDelistCmd(opts),
	)
	return root
}

// usecase builds a MarketUsecase over the catalog file.
func (o *options) usecase(cmd *cobra.Command) (*usecase.MarketUsecase, error) {
	c, err := adapters.LoadCatalog(o.catalogPath)
	if err != nil {
		return nil, err
	}
	var marketOpts []entity.Option
	if o.ignoreCase {
		marketOpts = append(marketOpts, entity.WithCaseInsensitiveNames())
	}
	return usecase.NewMarketUsecase(adapters.NewCatalogRepository(c), o.logger(cmd), marketOpts...), nil
}

// market loads one market of the catalog.
func (o *options) market(cmd *cobra.Command, name string) (finance.Market, error) {
	uc, err := o.usecase(cmd)
	if err != nil {
		return nil, err
	}
	return uc.Market(commandContext(cmd), name)
}

// logger writes text logs to stderr, at debug level with --verbose.
func (o *options) logger(cmd *cobra.Command) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(cmd.ErrOrStderr())
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	if o.verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
