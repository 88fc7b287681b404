package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type app struct {
	factory EnvFactory
	opts    GlobalOptions
}

// NewRootCommand - терминальный клиент маркетплейса ApnaDera.
func NewRootCommand(factory EnvFactory) *cobra.Command {
	a := &app{factory: factory}

	root := &cobra.Command{
		Use:           "apnadera",
		Short:         "Terminal client for the ApnaDera real-estate marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&a.opts.Verbose, "verbose", "v", false, "enable debug logging to stderr")
	root.PersistentFlags().StringVar(&a.opts.EnvFile, "env-file", "", "path to a .env file")

	root.AddCommand(
		a.loginCommand(),
		a.registerCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.propertiesCommand(),
		a.favoriteCommand(),
		a.favoritesCommand(),
		a.dashboardCommand(),
		a.inquiryCommand(),
	)
	return root
}

// withEnv собирает зависимости на время одной команды.
func (a *app) withEnv(cmd *cobra.Command, fn func(ctx context.Context, env *Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := a.factory(ctx, a.opts)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(ctx, env)
}
