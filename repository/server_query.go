package repository

import (
	sq "github.com/Masterminds/squirrel"
)

// ServerQuery, sunucu listesi için immutable bir sorgu tanımıdır.
//
// Her method yeni bir ServerQuery döner, alıcıyı değiştirmez: squirrel
// builder'ları zaten persistent veri yapısıdır. Böylece filtre adımları
// birbirinden bağımsız test edilebilir ve bir ara adım güvenle paylaşılabilir:
//
//	base := repository.NewServerQuery()
//	gaming := base.InCategory("Gaming")   // base değişmez
//	top10 := gaming.Limit(10)
//
// SQL semantiği: tüm Where koşulları birleşir, LIMIT en son uygulanır.
type ServerQuery struct {
	builder        sq.SelectBuilder
	withNumMembers bool
}

// serverColumns, scanServer ile aynı sırada olmalıdır.
var serverColumns = []string{
	"s.id", "s.name", "s.owner_id", "s.category_id", "c.name",
	"s.description", "s.icon_url", "s.created_at",
}

// NewServerQuery, tüm sunucuları id sırasıyla dönen temel sorguyu oluşturur.
// id ASC, storage katmanının varsayılan ve kararlı sıralamasıdır — quantity
// kesmesi bu sıraya göre yapılır.
func NewServerQuery() ServerQuery {
	return ServerQuery{
		builder: sq.Select(serverColumns...).
			From("servers s").
			Join("categories c ON c.id = s.category_id").
			OrderBy("s.id ASC"),
	}
}

// InCategory, kategori adına göre birebir eşleşme filtresi ekler.
// SQLite BINARY collation → büyük/küçük harf duyarlı.
func (q ServerQuery) InCategory(name string) ServerQuery {
	q.builder = q.builder.Where(sq.Eq{"c.name": name})
	return q
}

// MemberOf, kullanıcının üye olduğu sunuculara daraltır.
// JOIN yerine IN subquery — satır çoğalması olmaz, num_members etkilenmez.
func (q ServerQuery) MemberOf(userID int64) ServerQuery {
	q.builder = q.builder.Where("s.id IN (SELECT sm.server_id FROM server_members sm WHERE sm.user_id = ?)", userID)
	return q
}

// WithMemberCount, her satıra farklı üye sayısını num_members olarak ekler.
func (q ServerQuery) WithMemberCount() ServerQuery {
	if q.withNumMembers {
		return q
	}
	q.builder = q.builder.Column("(SELECT COUNT(DISTINCT m.user_id) FROM server_members m WHERE m.server_id = s.id) AS num_members")
	q.withNumMembers = true
	return q
}

// Limit, sonuç sayısını n ile sınırlar. n == 0 boş sonuç demektir.
func (q ServerQuery) Limit(n int) ServerQuery {
	if n < 0 {
		n = 0
	}
	q.builder = q.builder.Limit(uint64(n))
	return q
}

// WithID, tek bir sunucuya daraltır.
func (q ServerQuery) WithID(id int64) ServerQuery {
	q.builder = q.builder.Where(sq.Eq{"s.id": id})
	return q
}

// HasMemberCount, WithMemberCount uygulanmış mı.
func (q ServerQuery) HasMemberCount() bool {
	return q.withNumMembers
}

// ToSql, sorguyu SQL metni ve argümanlara çevirir.
func (q ServerQuery) ToSql() (string, []any, error) {
	return q.builder.ToSql()
}
