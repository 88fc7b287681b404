package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/spf13/cobra"
)

// listFlags - флаги фильтров; собираются в те же domain.Filters, что и query-параметры веб-страницы.
type listFlags struct {
	search    string
	propType  string
	status    string
	minPrice  int64
	maxPrice  int64
	bedrooms  int
	bathrooms int
	city      string
	state     string
	featured  bool
	page      int
}

func (f *listFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.search, "search", "s", "", "free-text search")
	fl.StringVarP(&f.propType, "type", "t", "", "house, apartment, condo, townhouse, land or commercial")
	fl.StringVar(&f.status, "status", "", "available, pending, sold or rented")
	fl.Int64Var(&f.minPrice, "min-price", 0, "minimum price")
	fl.Int64Var(&f.maxPrice, "max-price", 0, "maximum price")
	fl.IntVar(&f.bedrooms, "bedrooms", 0, "minimum bedrooms")
	fl.IntVar(&f.bathrooms, "bathrooms", 0, "minimum bathrooms")
	fl.StringVar(&f.city, "city", "", "city")
	fl.StringVar(&f.state, "state", "", "state")
	fl.BoolVar(&f.featured, "featured", false, "only featured properties")
	fl.IntVarP(&f.page, "page", "P", 1, "page number")
}

func (f *listFlags) filters() domain.Filters {
	q := url.Values{}
	set := func(key domain.FilterKey, value string) {
		if value != "" {
			q.Set(string(key), value)
		}
	}
	positive := func(n int64) string {
		if n <= 0 {
			return ""
		}
		return strconv.FormatInt(n, 10)
	}

	set(domain.FilterSearch, f.search)
	set(domain.FilterType, f.propType)
	set(domain.FilterStatus, f.status)
	set(domain.FilterMinPrice, positive(f.minPrice))
	set(domain.FilterMaxPrice, positive(f.maxPrice))
	set(domain.FilterBedrooms, positive(int64(f.bedrooms)))
	set(domain.FilterBathrooms, positive(int64(f.bathrooms)))
	set(domain.FilterCity, f.city)
	set(domain.FilterState, f.state)
	if f.featured {
		set(domain.FilterFeatured, "true")
	}
	set(domain.FilterPage, positive(int64(f.page)))
	return domain.ParseFilters(q)
}

func (a *app) propertiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"p"},
		Short:   "Browse and manage property listings",
	}
	cmd.AddCommand(
		a.listPropertiesCommand(),
		a.showPropertyCommand(),
		a.searchPropertiesCommand(),
		a.myPropertiesCommand(),
		a.deletePropertyCommand(),
	)
	return cmd
}

func (a *app) listPropertiesCommand() *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters := flags.filters()
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					page, err := env.UseCases.ListProperties.Execute(ctx, sess, filters)
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					if len(page.Properties) == 0 {
						fmt.Fprintln(out, "No properties match your filters.")
						return nil
					}
					if err := printPropertyTable(out, page.Properties, sess.UserID()); err != nil {
						return err
					}
					p := page.Pagination
					fmt.Fprintf(out, "\nPage %d of %d (%d properties)\n", p.CurrentPage, p.TotalPages, p.TotalProperties)
					if p.HasNextPage {
						fmt.Fprintf(out, "Next page: --page %d\n", p.CurrentPage+1)
					}
					return nil
				})
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) showPropertyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					p, err := env.UseCases.GetProperty.Execute(ctx, sess, domain.ID(args[0]))
					if err != nil {
						return err
					}
					printProperty(cmd.OutOrStdout(), p, domain.ResolveRecipient(p, env.Support), sess.UserID())
					return nil
				})
			})
		},
	}
}

func (a *app) searchPropertiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Quick search by city, title or keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					results, err := env.UseCases.SearchProperties.Execute(ctx, sess, q)
					if err != nil {
						return err
					}
					if len(results) == 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "Nothing found for %q.\n", strings.TrimSpace(q))
						return nil
					}
					return printPropertyTable(cmd.OutOrStdout(), results, sess.UserID())
				})
			})
		},
	}
}

func (a *app) myPropertiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					list, err := env.UseCases.UserProperties.Execute(ctx, sess)
					if err != nil {
						return err
					}
					if len(list) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "You have not listed any properties yet.")
						return nil
					}
					return printPropertyTable(cmd.OutOrStdout(), list, sess.UserID())
				})
			})
		},
	}
}

func (a *app) deletePropertyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					if !sess.IsAuthenticated() {
						return domain.ErrLoginRequired
					}
					p, err := env.UseCases.GetProperty.Execute(ctx, sess, domain.ID(args[0]))
					if err != nil {
						return err
					}
					if !p.CanBeEditedBy(sess.User) {
						return fmt.Errorf("you can only delete your own properties")
					}
					return env.UseCases.DeleteProperty.Execute(ctx, sess, p.ID)
				})
			})
		},
	}
}
