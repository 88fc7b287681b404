package cli

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/spf13/cobra"
)

func (a *app) inquiryCommand() *cobra.Command {
	var form domain.InquiryForm
	cmd := &cobra.Command{
		Use:   "inquiry [property-id]",
		Short: "Contact a property's agent or owner, or the support team without an id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(ctx context.Context, env *Env) error {
				return inSession(ctx, env, cmd.ErrOrStderr(), func(ctx context.Context, sess *domain.Session) error {
					if sess.User != nil {
						if form.Name == "" {
							form.Name = sess.User.Name
						}
						if form.Email == "" {
							form.Email = sess.User.Email
						}
					}

					var property *domain.Property
					if len(args) == 1 {
						p, err := env.UseCases.GetProperty.Execute(ctx, sess, domain.ID(args[0]))
						if err != nil {
							return err
						}
						property = p
					}
					return env.UseCases.SendInquiry.Execute(ctx, sess, property, &form)
				})
			})
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "your name (defaults to the logged in user)")
	cmd.Flags().StringVar(&form.Email, "email", "", "your email (defaults to the logged in user)")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "your phone")
	cmd.Flags().StringVarP(&form.Message, "message", "m", "", "message text")
	return cmd
}
