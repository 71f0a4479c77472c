package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/storefront/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		return 1
	}
	return 0
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	prefsPath  string
	verbose    bool
}

func (f *globalFlags) options(cli bool) app.Options {
	return app.Options{
		ConfigPath:  f.configPath,
		PrefsPath:   f.prefsPath,
		Verbose:     f.verbose,
		LogToStderr: cli,
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Browse a headless CMS catalog and keep a local cart",
		Long: `storefront reads products and categories from a headless content API
and keeps a shopping cart on this machine.

Run without arguments to start the interactive storefront.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options(false))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/storefront/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/storefront/prefs.toml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newProductsCmd(flags),
		newCategoriesCmd(flags),
		newCatalogCmd(flags),
		newCartCmd(flags),
	)
	return root
}

// withServices opens the shared services for a CLI command and closes them
// when fn returns.
func withServices(cmd *cobra.Command, flags *globalFlags, fn func(*app.Services) error) error {
	s, err := app.Open(cmd.Context(), flags.options(true))
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(s)
}
