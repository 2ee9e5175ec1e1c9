package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Channel, bir sunucu kanalı.
// Sunucu listesinde her sunucunun altında "channel_server" olarak döner.
type Channel struct {
	ID        int64     `json:"id"`
	ServerID  int64     `json:"server_id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Topic     *string   `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateChannelRequest, yeni kanal oluşturma isteği.
type CreateChannelRequest struct {
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

// Validate, CreateChannelRequest kontrolü.
// Kanal isimleri küçük harfe çevrilir ve boşluklar tire olur ("General Chat" → "general-chat").
func (r *CreateChannelRequest) Validate() error {
	r.Name = strings.ToLower(strings.Join(strings.Fields(r.Name), "-"))
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("channel name must be between 1 and 100 characters")
	}

	r.Topic = strings.TrimSpace(r.Topic)
	if utf8.RuneCountInString(r.Topic) > 1024 {
		return fmt.Errorf("channel topic must be at most 1024 characters")
	}

	return nil
}
