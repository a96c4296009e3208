package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	"github.com/BruksfildServices01/realestate-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/realestate-manager/internal/db"
	infraRepo "github.com/BruksfildServices01/realestate-manager/internal/infra/repository"
	"github.com/BruksfildServices01/realestate-manager/internal/migrations"
	"github.com/BruksfildServices01/realestate-manager/internal/server"
	ucAccount "github.com/BruksfildServices01/realestate-manager/internal/usecase/account"
)

// openDB loads the configuration and connects to the database.
func openDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := dbpkg.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func newMigrator(db *gorm.DB) *migrations.Migrator {
	m := migrations.NewMigrator(db)
	m.Register(migrations.All()...)
	return m
}

// ======================================================
// serve
// ======================================================

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web application",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			if cfg.AutoMigrate {
				if err := migrations.Run(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			if err := ensureAdmin(cmd.Context(), db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
				return err
			}

			srv, err := server.New(cfg, db)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}
}

// ======================================================
// migrate
// ======================================================

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, db, err := openDB()
				if err != nil {
					return err
				}
				defer dbpkg.Close(db)

				n, err := newMigrator(db).Up()
				if err != nil {
					return err
				}
				fmt.Printf("Applied %d migration(s)\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last applied migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, db, err := openDB()
				if err != nil {
					return err
				}
				defer dbpkg.Close(db)

				mg, err := newMigrator(db).Down()
				if err != nil {
					return err
				}
				if mg == nil {
					fmt.Println("Nothing to roll back")
					return nil
				}
				fmt.Printf("Rolled back %s_%s\n", mg.Version, mg.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, db, err := openDB()
				if err != nil {
					return err
				}
				defer dbpkg.Close(db)

				statuses, err := newMigrator(db).Status()
				if err != nil {
					return err
				}
				for _, st := range statuses {
					state := "pending"
					if st.Applied {
						state = "applied " + st.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Printf("%s  %-32s %s\n", st.Version, st.Name, state)
				}
				return nil
			},
		},
	)
	return cmd
}

// ======================================================
// bootstrap-admin
// ======================================================

func bootstrapAdminCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "bootstrap-admin",
		Short: "Create the admin account or reset its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			if email == "" {
				email = cfg.AdminEmail
			}
			if password == "" {
				password = cfg.AdminPassword
			}
			return ensureAdmin(cmd.Context(), db, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin login (defaults to ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (defaults to ADMIN_PASSWORD)")
	return cmd
}

func ensureAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dispatcher := audit.NewDispatcher(audit.New(db))
	defer dispatcher.Close()

	result, err := ucAccount.NewBootstrapAdmin(
		infraRepo.NewAccountGormRepository(db),
		dispatcher,
	).Execute(ctx, email, password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	log.Printf("admin account %s: %s", email, result)
	return nil
}
