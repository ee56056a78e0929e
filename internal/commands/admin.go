package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/yukikurage/company-task-api/internal/database"
	"github.com/yukikurage/company-task-api/internal/events"
	"github.com/yukikurage/company-task-api/internal/models"
	"github.com/yukikurage/company-task-api/internal/repository"
	"github.com/yukikurage/company-task-api/internal/services"
	"gorm.io/gorm"
)

// adminOptions describes the first administrator of a fresh deployment.
type adminOptions struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Company   string
}

var adminOpts adminOptions

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator, and its company when missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}

		user, err := createAdmin(cmd.Context(), db, adminOpts)
		if err != nil {
			return err
		}
		slog.Info("administrator created", "user_id", user.ID, "username", user.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	flags := createAdminCmd.Flags()
	flags.StringVar(&adminOpts.Username, "username", "", "login name")
	flags.StringVar(&adminOpts.Password, "password", "", "password")
	flags.StringVar(&adminOpts.Email, "email", "", "email address")
	flags.StringVar(&adminOpts.FirstName, "first-name", "Admin", "first name")
	flags.StringVar(&adminOpts.LastName, "last-name", "User", "last name")
	flags.StringVar(&adminOpts.Company, "company", "", "company the administrator belongs to")
	for _, name := range []string{"username", "password", "email", "company"} {
		_ = createAdminCmd.MarkFlagRequired(name)
	}
}

// createAdmin goes through the services so the same validation applies as
// for users created over HTTP.
func createAdmin(ctx context.Context, db *gorm.DB, opts adminOptions) (*models.User, error) {
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	publisher := events.NopPublisher{}

	companies := services.NewCompanyService(companyRepo, publisher)
	users := services.NewUserService(userRepo, companyRepo, publisher)

	company, err := companyRepo.FindByName(ctx, opts.Company)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		company, err = companies.CreateCompany(ctx, services.Actor{IsAdmin: true}, services.CreateCompanyInput{
			Name:        opts.Company,
			Description: opts.Company,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to prepare company %q: %w", opts.Company, err)
	}

	isAdmin := true
	user, err := users.CreateUser(ctx, nil, services.CreateUserInput{
		Username:  opts.Username,
		Password:  opts.Password,
		Email:     opts.Email,
		FirstName: opts.FirstName,
		LastName:  opts.LastName,
		IsAdmin:   &isAdmin,
		CompanyID: company.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create administrator: %w", err)
	}
	return user, nil
}
