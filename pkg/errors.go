// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Sabit error değişkenleri sayesinde karşılaştırma string yerine
// referans ile yapılır — wrap edilmiş error'lar da eşleşir:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları döner, handler katmanı HTTP status code'a map'ler.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
)

// PublicError, client'a olduğu gibi gösterilecek bir mesaj taşıyan error.
//
// fmt.Errorf("%w: ...") zinciri "not found: Server not found." gibi bir metin
// üretir; bazı endpoint'ler ise sabit bir gövde sözleşmesine sahiptir
// ({"error": "Server not found."}). PublicError mesajı aynen korur,
// errors.Is ise Kind üzerinden çalışmaya devam eder.
type PublicError struct {
	Kind    error
	Message string
}

// NewPublicError, constructor.
func NewPublicError(kind error, message string) *PublicError {
	return &PublicError{Kind: kind, Message: message}
}

func (e *PublicError) Error() string { return e.Message }

func (e *PublicError) Unwrap() error { return e.Kind }
