// Package models — Server domain modeli.
//
// Server, dizinde listelenen bir sohbet sunucusudur. Her sunucu tek bir
// kategoriye aittir ve server_members üzerinden kullanıcılarla ilişkilidir.
package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate, paket genelinde paylaşılan validator instance'ı.
// validator.Validate thread-safe'dir ve struct metadata'sını cache'ler.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Server, sunucu verisini temsil eder.
//
// NumMembers sadece with_num_members istendiğinde doldurulur; nil ise
// JSON'da hiç yer almaz (omitempty). Channels her zaman döner, kanal yoksa [].
type Server struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	OwnerID     int64     `json:"owner_id"`
	CategoryID  int64     `json:"category_id"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	IconURL     *string   `json:"icon_url"`
	CreatedAt   time.Time `json:"created_at"`
	NumMembers  *int      `json:"num_members,omitempty"`
	Channels    []Channel `json:"channel_server"`
}

// CreateServerRequest, yeni sunucu oluşturma isteği.
type CreateServerRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	CategoryID  int64  `json:"category_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"max=500"`
}

// Validate, boşlukları kırpıp struct tag kurallarını uygular.
func (r *CreateServerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	return describeValidationError(validate.Struct(r))
}
