package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/format"
	"github.com/spf13/cobra"
)

// readPassword читает пароль из stdin, если флаг не задан.
func readPassword(cmd *cobra.Command, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *app) loginCommand() *cobra.Command {
	var creds domain.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd, creds.Password)
			if err != nil {
				return err
			}
			creds.Password = password
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return signingIn(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					return env.UseCases.Auth.Login(ctx, sess, env.Store, creds)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&creds.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password (read from stdin when omitted)")
	return cmd
}

func (a *app) registerCommand() *cobra.Command {
	var reg domain.Registration
	var role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd, reg.Password)
			if err != nil {
				return err
			}
			reg.Password = password
			reg.Role = domain.Role(role)
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return signingIn(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					return env.UseCases.Auth.Register(ctx, sess, env.Store, reg)
				})
			})
		},
	}
	cmd.Flags().StringVar(&reg.Name, "name", "", "full name")
	cmd.Flags().StringVarP(&reg.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&reg.Password, "password", "p", "", "password (read from stdin when omitted)")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleBuyer), "buyer, seller or agent")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					return env.UseCases.Auth.Logout(ctx, sess, env.Store)
				})
			})
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(_ context.Context, sess *domain.Session) error {
					if !sess.IsAuthenticated() {
						return domain.ErrLoginRequired
					}
					u := sess.User
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "%s <%s>\n", u.Name, u.Email)
					fmt.Fprintf(out, "Role: %s\n", format.CapitalizeFirst(string(u.Role)))
					if u.Phone != "" {
						fmt.Fprintf(out, "Phone: %s\n", format.FormatPhoneNumber(u.Phone))
					}
					if !u.MemberSince.IsZero() {
						fmt.Fprintf(out, "Member since: %s\n", format.FormatDate(u.MemberSince))
					}
					return nil
				})
			})
		},
	}
}
