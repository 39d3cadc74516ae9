// Package appfs embeds the static assets shipped with the binaries: SQL migrations, email templates and seed fixtures.
package appfs

import "embed"

//go:embed migrations all:templates fixtures
var FS embed.FS

const (
	MigrationsDir     = "migrations"
	EmailTemplatesDir = "templates/email"
	FixturesFile      = "fixtures/seed.json"
)
