package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
	"github.com/Dosada05/tournament-platform/services"
	"github.com/Dosada05/tournament-platform/validators"
)

func newCreateAdminCmd() *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long:  "Administrators cannot register through the API; this is the only way to create one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			userRepo := repositories.NewPostgresUserRepository(conn)
			identity := services.NewIdentityService(userRepo)
			auth := services.NewAuthService(identity, userRepo, services.AuthConfig{})

			user, err := createAdmin(cmd.Context(), auth, models.RegisterInput{Email: email, Name: name, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %d <%s>\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&name, "name", "", "Admin display name")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// createAdmin checks the credentials against the registration rules and
// creates the account with the admin role.
func createAdmin(ctx context.Context, auth services.AuthService, in models.RegisterInput) (*models.User, error) {
	in.Role = models.RoleGuest // admin не выбирается при регистрации, проверяем остальные поля
	in.Normalize()
	if err := validators.ValidateRegister(in); err != nil {
		return nil, err
	}

	in.Role = models.RoleAdmin
	return auth.Register(ctx, in)
}
