package repository

import "strings"

// isUniqueViolation, SQLite UNIQUE constraint hatasını kontrol eder.
// modernc driver hata kodunu mesaja gömer; metin eşleşmesi yeterli.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation — foreign_keys(1) pragma'sı açık olmalı.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
