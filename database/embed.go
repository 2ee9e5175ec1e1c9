package database

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations, binary'ye gömülü migration dosyalarını migrations/ kökünden
// görünecek şekilde döner. New'e doğrudan verilebilir.
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// fs.Sub sadece geçersiz path'te hata döner — sabit path ile olamaz.
		panic(err)
	}
	return sub
}
