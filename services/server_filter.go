// Package services — sunucu dizini filtre çözümleyicisi.
//
// GET /api/servers query parametreleri burada iki aşamada işlenir:
//
//  1. ParseServerListQuery: url.Values → models.ServerListQuery (tip dönüşümü
//     ve doğrulama sınırda, bir kere).
//  2. ServerFilter.Resolve: kimlik önkoşulu → sıralı filtre adımları →
//     repository.ServerQuery → sonuç. Her adım yeni bir sorgu döner.
package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
	"github.com/akinalp/mbchat/repository"
)

// ErrServerNotFound, server_id verilip eşleşme olmadığında döner.
// Mesaj client'a aynen gider.
var ErrServerNotFound = pkg.NewPublicError(pkg.ErrNotFound, "Server not found.")

// ParseServerListQuery, ham query parametrelerini tipli sorguya çevirir.
//
// Kurallar:
//   - Boş string parametre yok sayılır ("?category=" → filtre yok).
//   - Bayraklar yalnızca tam olarak "true" ise açıktır; "True", "1" vb. false.
//   - quantity ve server_id tam sayı olmalıdır, değilse pkg.ErrBadRequest.
func ParseServerListQuery(values url.Values) (models.ServerListQuery, error) {
	var q models.ServerListQuery

	if v := values.Get("category"); v != "" {
		q.Category = &v
	}

	if v := values.Get("quantity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.ServerListQuery{}, fmt.Errorf("%w: quantity must be an integer", pkg.ErrBadRequest)
		}
		q.Quantity = &n
	}

	if v := values.Get("server_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return models.ServerListQuery{}, fmt.Errorf("%w: server_id must be an integer", pkg.ErrBadRequest)
		}
		q.ServerID = &id
	}

	q.ByUser = values.Get("by_user") == "true"
	q.WithNumMembers = values.Get("with_num_members") == "true"

	if err := q.Validate(); err != nil {
		return models.ServerListQuery{}, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	return q, nil
}

// filterStep, sorguyu daraltan tek bir adımdır. Alıcıyı değiştirmez.
type filterStep func(repository.ServerQuery) repository.ServerQuery

// ServerFilter, tipli sorguyu repository üzerinden çalıştırır.
type ServerFilter struct {
	serverRepo repository.ServerRepository
}

// NewServerFilter, constructor.
func NewServerFilter(serverRepo repository.ServerRepository) *ServerFilter {
	return &ServerFilter{serverRepo: serverRepo}
}

// BuildServerQuery, parametreleri sabit sırada uygulanan adımlara çevirir:
// category → by_user → with_num_members → quantity → server_id.
//
// by_user ve server_id tek bir kimlik önkoşulunu paylaşır; anonim istekte
// herhangi biri varsa hiçbir adım kurulmadan pkg.ErrUnauthorized döner.
func BuildServerQuery(params models.ServerListQuery, auth models.AuthContext) (repository.ServerQuery, error) {
	if params.RequiresAuth() && !auth.IsAuthenticated {
		return repository.ServerQuery{}, fmt.Errorf("%w: authentication required for by_user or server_id", pkg.ErrUnauthorized)
	}

	q := repository.NewServerQuery()
	for _, step := range filterSteps(params, auth) {
		q = step(q)
	}
	return q, nil
}

func filterSteps(params models.ServerListQuery, auth models.AuthContext) []filterStep {
	var steps []filterStep

	if params.Category != nil {
		category := *params.Category
		steps = append(steps, func(q repository.ServerQuery) repository.ServerQuery {
			return q.InCategory(category)
		})
	}

	if params.ByUser {
		userID := auth.UserID
		steps = append(steps, func(q repository.ServerQuery) repository.ServerQuery {
			return q.MemberOf(userID)
		})
	}

	if params.WithNumMembers {
		steps = append(steps, repository.ServerQuery.WithMemberCount)
	}

	if params.Quantity != nil {
		n := *params.Quantity
		steps = append(steps, func(q repository.ServerQuery) repository.ServerQuery {
			return q.Limit(n)
		})
	}

	if params.ServerID != nil {
		id := *params.ServerID
		steps = append(steps, func(q repository.ServerQuery) repository.ServerQuery {
			return q.WithID(id)
		})
	}

	return steps
}

// Resolve, sorguyu kurar ve çalıştırır.
// server_id verilmiş ve sonuç boşsa ErrServerNotFound döner; diğer durumlarda
// boş sonuç geçerli bir cevaptır ([]).
func (f *ServerFilter) Resolve(ctx context.Context, params models.ServerListQuery, auth models.AuthContext) ([]models.Server, error) {
	q, err := BuildServerQuery(params, auth)
	if err != nil {
		return nil, err
	}

	servers, err := f.serverRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	if params.ServerID != nil && len(servers) == 0 {
		return nil, ErrServerNotFound
	}

	return servers, nil
}
