package main

import (
	"os"
	"strconv"

	"accounts/internal/errors"

	"github.com/spf13/cobra"
)

const databaseURLEnv = "DATABASE_URL"

// migrator is the part of migration.Migrator the commands drive.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Close() error
}

type openFunc func(databaseURL string) (migrator, error)

type rootOptions struct {
	databaseURL string
	open        openFunc
}

func newRootCmd(open openFunc) *cobra.Command {
	opts := &rootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the accounts database schema",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "",
		"PostgreSQL URL (defaults to $"+databaseURLEnv+")")

	cmd.AddCommand(
		newUpCmd(opts),
		newDownCmd(opts),
		newStepsCmd(opts),
		newVersionCmd(opts),
		newForceCmd(opts),
	)

	return cmd
}

// withMigrator opens the migrator, runs fn and closes it again.
func (o *rootOptions) withMigrator(fn func(m migrator) error) (err error) {
	databaseURL := o.databaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv(databaseURLEnv)
	}
	if databaseURL == "" {
		return errors.Errorf("--database-url or %s is required", databaseURLEnv)
	}

	m, err := o.open(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, m.Close())
	}()

	return fn(m)
}

func newUpCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withMigrator(func(m migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				cmd.Println("Migrations applied")

				return printVersion(cmd, m)
			})
		},
	}
}

func newDownCmd(opts *rootOptions) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration, dropping all account data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirm {
				return errors.New("down drops every account; rerun with --yes to confirm")
			}

			return opts.withMigrator(func(m migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				cmd.Println("Migrations rolled back")

				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm dropping the schema")

	return cmd
}

func newStepsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "steps N",
		Short: "Apply N migrations, or roll back when N is negative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInt("steps", args[0])
			if err != nil {
				return err
			}
			if n == 0 {
				return errors.New("steps must not be zero")
			}

			return opts.withMigrator(func(m migrator) error {
				if err := m.Steps(n); err != nil {
					return err
				}

				return printVersion(cmd, m)
			})
		},
	}
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withMigrator(func(m migrator) error {
				return printVersion(cmd, m)
			})
		},
	}
}

func newForceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Mark VERSION as applied without running it, to recover from a dirty state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseInt("version", args[0])
			if err != nil {
				return err
			}

			return opts.withMigrator(func(m migrator) error {
				if err := m.Force(version); err != nil {
					return err
				}

				return printVersion(cmd, m)
			})
		},
	}
}

func printVersion(cmd *cobra.Command, m migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	if dirty {
		cmd.Printf("Schema version %d (dirty)\n", version)
	} else {
		cmd.Printf("Schema version %d\n", version)
	}

	return nil
}

func parseInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Errorf("%s must be an integer, got %q", name, raw)
	}

	return n, nil
}
