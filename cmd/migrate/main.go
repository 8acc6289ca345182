// Command migrate applies the accounts schema.
package main

import (
	"os"

	"accounts/internal/infra/persistence/migration"
)

func main() {
	if err := newRootCmd(openMigrator).Execute(); err != nil {
		os.Exit(1)
	}
}

func openMigrator(databaseURL string) (migrator, error) {
	m, err := migration.NewMigrator(databaseURL)
	if err != nil {
		return nil, err
	}

	return m, nil
}
