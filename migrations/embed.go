// Package migrations embeds the SQL migration files into the binary so
// the schema can be applied without shipping loose files alongside it.
package migrations

import (
	"embed"

	"github.com/nerrad567/hasp-designer/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // files sit at the root of the embedded FS
}
