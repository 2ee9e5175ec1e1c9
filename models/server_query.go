package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ServerListQuery, GET /api/servers query parametrelerinin tipli hali.
//
// Pointer field'lar opsiyoneldir: nil = "bu boyutta filtre yok".
// Bool field'ların varsayılanı false'tur. String → tip dönüşümü sınırda
// (services.ParseServerListQuery) bir kere yapılır; filtre mantığı
// string karşılaştırması görmez.
type ServerListQuery struct {
	Category       *string
	Quantity       *int `validate:"omitempty,min=0"`
	ByUser         bool
	ServerID       *int64
	WithNumMembers bool
}

// RequiresAuth, sorgunun kimlik doğrulaması gerektirip gerektirmediğini döner.
// by_user ve server_id aynı önkoşulu paylaşır.
func (q ServerListQuery) RequiresAuth() bool {
	return q.ByUser || q.ServerID != nil
}

// Validate, struct tag kurallarını uygular.
func (q *ServerListQuery) Validate() error {
	return describeValidationError(validate.Struct(q))
}

// describeValidationError, validator hatasını tek satırlık okunabilir bir
// mesaja çevirir. nil → nil.
func describeValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fieldName(fe))
	case "min", "gt":
		return fmt.Errorf("%s must be at least %s", fieldName(fe), minValue(fe))
	case "max":
		return fmt.Errorf("%s must be at most %s characters", fieldName(fe), fe.Param())
	default:
		return fmt.Errorf("%s is invalid", fieldName(fe))
	}
}

// fieldName, Go field adını API'deki snake_case karşılığına çevirir.
func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name"
	case "CategoryID":
		return "category_id"
	case "Description":
		return "description"
	case "Quantity":
		return "quantity"
	default:
		return fe.Field()
	}
}

func minValue(fe validator.FieldError) string {
	if fe.Tag() == "gt" {
		return "1"
	}
	return fe.Param()
}
