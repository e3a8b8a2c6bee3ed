// Package migrations embeds the schema bootstrap scripts.
// Every script is idempotent so Apply can run against an existing database.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gorm.io/gorm"
)

//go:embed *.sql
var files embed.FS

// Names returns the script names in apply order
func Names() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Script returns the content of one embedded script
func Script(name string) (string, error) {
	b, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read migration %s: %w", name, err)
	}
	return string(b), nil
}

// Apply executes every script in order
func Apply(ctx context.Context, db *gorm.DB) error {
	names, err := Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		script, err := Script(name)
		if err != nil {
			return err
		}
		if err := db.WithContext(ctx).Exec(script).Error; err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
