package cli

import (
	"context"
	"fmt"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/format"
	"github.com/spf13/cobra"
)

func (a *app) favoriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Add a property to favorites or remove it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					p, err := env.UseCases.ToggleFavorite.Execute(ctx, sess, domain.ID(args[0]))
					if err != nil {
						return err
					}
					if p.IsFavoritedBy(sess.UserID()) {
						fmt.Fprintf(cmd.OutOrStdout(), "♥ %s is in your favorites\n", p.Title)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "♡ %s removed from favorites\n", p.Title)
					}
					return nil
				})
			})
		},
	}
}

func (a *app) favoritesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List your favorite properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					list, err := env.UseCases.UserFavorites.Execute(ctx, sess)
					if err != nil {
						return err
					}
					if len(list) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
						return nil
					}
					return printPropertyTable(cmd.OutOrStdout(), list, sess.UserID())
				})
			})
		},
	}
}

func (a *app) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show account statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					if !sess.IsAuthenticated() {
						return domain.ErrLoginRequired
					}
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "Welcome back, %s\n\n", sess.User.Name)

					if sess.User.ListsProperties() {
						stats, err := env.UseCases.UserStats.Execute(ctx, sess)
						if err != nil {
							return err
						}
						fmt.Fprintf(out, "Total properties: %s %s\n", format.FormatNumber(int64(stats.TotalProperties)), stats.PropertiesChange)
						fmt.Fprintf(out, "Total favorites:  %s %s\n", format.FormatNumber(int64(stats.TotalFavorites)), stats.FavoritesChange)
						fmt.Fprintf(out, "Total views:      %s %s\n", format.FormatNumber(int64(stats.TotalViews)), stats.ViewsChange)
						fmt.Fprintf(out, "Portfolio value:  %s %s\n", format.FormatPrice(stats.TotalValue), stats.ValueChange)
					}

					favs, err := env.UseCases.UserFavorites.Execute(ctx, sess)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Saved favorites:  %d\n", len(favs))
					return nil
				})
			})
		},
	}
}
