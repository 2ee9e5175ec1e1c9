// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository bir TxQuerier (burada *sql.DB) alır ve interface döner.
package main

import (
	"database/sql"

	"github.com/akinalp/mbchat/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	User     repository.UserRepository
	Category repository.CategoryRepository
	Server   repository.ServerRepository
	Channel  repository.ChannelRepository
}

func initRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		User:     repository.NewSQLiteUserRepo(db),
		Category: repository.NewSQLiteCategoryRepo(db),
		Server:   repository.NewSQLiteServerRepo(db),
		Channel:  repository.NewSQLiteChannelRepo(db),
	}
}
