package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pbaille/investin/internal/api"
	"github.com/pbaille/investin/internal/catalog"
	"github.com/pbaille/investin/internal/config"
	"github.com/pbaille/investin/internal/domain"
	"github.com/pbaille/investin/internal/logging"
	"github.com/pbaille/investin/internal/present"
	"github.com/pbaille/investin/internal/seed"
	"github.com/pbaille/investin/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	dbOverride string
	themeName  string
	verbose    bool

	cfg     *config.Config
	logger  *zap.Logger
	backend store.Backend
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "investin",
		Short:        "Browse startups looking for investment",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadFromFile(configPath)
			if err != nil {
				return err
			}
			config.ApplyFlagOverrides(cfg, dbOverride, themeName, verbose)

			logger, err = logging.New(cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			backend, err = store.Open(cfg.Storage, cfg.Logging.Level == "debug")
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if backend != nil {
				backend.Close()
			}
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().StringVar(&dbOverride, "db", "", "database path or DSN (overrides config)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "display theme: minimal, gradient or motion")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(sectorsCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	return rootCmd
}

func theme() present.Theme {
	return present.ThemeByName(cfg.Display.Theme)
}

func loadView(cmd *cobra.Command) *catalog.View {
	loader := catalog.NewLoader(backend, logger)
	return catalog.NewView(loader.LoadCatalog(cmd.Context()))
}

func listCmd() *cobra.Command {
	var sector, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List startups, optionally filtered by sector and text",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := loadView(cmd)
			view.SetSector(domain.SectorFilter(sector))
			view.SetQuery(query)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, present.SectorBar(theme(), view.Sectors(), view.Sector()))
			fmt.Fprintln(out, present.CardList(theme(), view.Visible()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sector, "sector", "s", string(domain.AllSectors), "sector ID, or all")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search name and description")
	return cmd
}

func sectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sectors",
		Short: "List all sectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			sectors := loadView(cmd).Sectors()

			out := cmd.OutOrStdout()
			if len(sectors) == 0 {
				fmt.Fprintln(out, "No sectors yet. Use 'investin seed' to load a demo catalog.")
				return nil
			}

			for _, c := range sectors {
				fmt.Fprintf(out, "%s  %s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a startup and its interested investors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := loadView(cmd)

			// Find startup by prefix
			startup, ok := view.Resolve(args[0])
			if !ok {
				return fmt.Errorf("startup not found: %s", args[0])
			}

			detail := catalog.NewDetail(catalog.NewLoader(backend, logger), logger)
			<-detail.Select(cmd.Context(), startup)

			fmt.Fprintln(cmd.OutOrStdout(), present.DetailView(theme(), detail.Snapshot()))
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.Server.Addr()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := api.New(catalog.NewLoader(backend, logger), addr, logger)
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (defaults to config host:port)")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := seed.Demo(cmd.Context(), backend, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sectors, %d startups, %d investors\n",
				res.Sectors, res.Startups, res.Investors)
			return nil
		},
	}
}
