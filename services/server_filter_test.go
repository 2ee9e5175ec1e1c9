package services_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
	"github.com/akinalp/mbchat/repository"
	"github.com/akinalp/mbchat/services"
	"github.com/akinalp/mbchat/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestParseServerListQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    models.ServerListQuery
		wantErr error
	}{
		{
			name: "no params",
			raw:  "",
			want: models.ServerListQuery{},
		},
		{
			name: "all params",
			raw:  "category=Gaming&quantity=10&by_user=true&server_id=12&with_num_members=true",
			want: models.ServerListQuery{
				Category:       ptr("Gaming"),
				Quantity:       ptr(10),
				ByUser:         true,
				ServerID:       ptr(int64(12)),
				WithNumMembers: true,
			},
		},
		{
			name: "empty values are absent",
			raw:  "category=&quantity=&server_id=",
			want: models.ServerListQuery{},
		},
		{
			name: "flags require exact true",
			raw:  "by_user=True&with_num_members=1",
			want: models.ServerListQuery{},
		},
		{
			name: "quantity zero",
			raw:  "quantity=0",
			want: models.ServerListQuery{Quantity: ptr(0)},
		},
		{name: "quantity not integer", raw: "quantity=abc", wantErr: pkg.ErrBadRequest},
		{name: "quantity float", raw: "quantity=1.5", wantErr: pkg.ErrBadRequest},
		{name: "quantity negative", raw: "quantity=-1", wantErr: pkg.ErrBadRequest},
		{name: "server_id not integer", raw: "server_id=abc", wantErr: pkg.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			got, err := services.ParseServerListQuery(values)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildServerQuery_AuthPrecondition(t *testing.T) {
	tests := []struct {
		name   string
		params models.ServerListQuery
		auth   models.AuthContext
		ok     bool
	}{
		{"anonymous plain list", models.ServerListQuery{Category: ptr("Gaming")}, models.Anonymous(), true},
		{"anonymous by_user", models.ServerListQuery{ByUser: true}, models.Anonymous(), false},
		{"anonymous server_id", models.ServerListQuery{ServerID: ptr(int64(1))}, models.Anonymous(), false},
		{"authenticated by_user", models.ServerListQuery{ByUser: true}, models.AuthenticatedAs(3), true},
		{"authenticated server_id", models.ServerListQuery{ServerID: ptr(int64(1))}, models.AuthenticatedAs(3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.BuildServerQuery(tt.params, tt.auth)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, pkg.ErrUnauthorized)
			}
		})
	}
}

func TestBuildServerQuery_StepOrder(t *testing.T) {
	q, err := services.BuildServerQuery(models.ServerListQuery{
		Category:       ptr("Gaming"),
		ByUser:         true,
		WithNumMembers: true,
		Quantity:       ptr(3),
	}, models.AuthenticatedAs(9))
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.True(t, q.HasMemberCount())
	assert.Equal(t, []any{"Gaming", int64(9)}, args)
	assert.Contains(t, sql, "LIMIT 3")
}

// directory: dizin senaryoları için gerçek SQLite üzerinde bir ServerFilter.
//
//	s1..s12 Gaming (owner=u1), m1 Music (owner=u2, üye: u1, u3)
type directory struct {
	filter     *services.ServerFilter
	u1, u2, u3 int64
	gaming     []int64
	music      int64
}

func newDirectory(t *testing.T) directory {
	t.Helper()
	db := testutil.NewDB(t)

	d := directory{filter: services.NewServerFilter(repository.NewSQLiteServerRepo(db.Conn))}
	d.u1 = testutil.InsertUser(t, db, "u1")
	d.u2 = testutil.InsertUser(t, db, "u2")
	d.u3 = testutil.InsertUser(t, db, "u3")

	gaming := testutil.CategoryID(t, db, "Gaming")
	for i := 0; i < 12; i++ {
		d.gaming = append(d.gaming, testutil.InsertServer(t, db, "gaming", d.u1, gaming))
	}

	d.music = testutil.InsertServer(t, db, "music", d.u2, testutil.CategoryID(t, db, "Music"))
	testutil.AddMember(t, db, d.music, d.u1)
	testutil.AddMember(t, db, d.music, d.u3)
	return d
}

func TestServerFilter_Resolve(t *testing.T) {
	t.Parallel()
	d := newDirectory(t)
	ctx := context.Background()

	t.Run("category quantity and member count", func(t *testing.T) {
		got, err := d.filter.Resolve(ctx, models.ServerListQuery{
			Category:       ptr("Gaming"),
			Quantity:       ptr(10),
			WithNumMembers: true,
		}, models.Anonymous())
		require.NoError(t, err)
		require.Len(t, got, 10)
		for _, s := range got {
			assert.Equal(t, "Gaming", s.Category)
			require.NotNil(t, s.NumMembers)
			assert.Equal(t, 1, *s.NumMembers)
		}
	})

	t.Run("quantity larger than matches", func(t *testing.T) {
		got, err := d.filter.Resolve(ctx, models.ServerListQuery{Quantity: ptr(100)}, models.Anonymous())
		require.NoError(t, err)
		assert.Len(t, got, 13)
	})

	t.Run("quantity zero", func(t *testing.T) {
		got, err := d.filter.Resolve(ctx, models.ServerListQuery{Quantity: ptr(0)}, models.Anonymous())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("no member count unless requested", func(t *testing.T) {
		got, err := d.filter.Resolve(ctx, models.ServerListQuery{Category: ptr("Music")}, models.Anonymous())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].NumMembers)
	})

	t.Run("by_user", func(t *testing.T) {
		got, err := d.filter.Resolve(ctx, models.ServerListQuery{ByUser: true, WithNumMembers: true}, models.AuthenticatedAs(d.u3))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, d.music, got[0].ID)
		assert.Equal(t, 3, *got[0].NumMembers)
	})

	t.Run("by_user anonymous", func(t *testing.T) {
		got, err := d.filter.Resolve(ctx, models.ServerListQuery{ByUser: true}, models.Anonymous())
		assert.ErrorIs(t, err, pkg.ErrUnauthorized)
		assert.Nil(t, got)
	})

	t.Run("server_id found", func(t *testing.T) {
		got, err := d.filter.Resolve(ctx, models.ServerListQuery{ServerID: ptr(d.music)}, models.AuthenticatedAs(d.u2))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "music", got[0].Name)
	})

	t.Run("server_id not found", func(t *testing.T) {
		_, err := d.filter.Resolve(ctx, models.ServerListQuery{ServerID: ptr(int64(12345))}, models.AuthenticatedAs(d.u2))
		assert.ErrorIs(t, err, pkg.ErrNotFound)
		assert.EqualError(t, err, "Server not found.")
	})

	t.Run("server_id outside category", func(t *testing.T) {
		_, err := d.filter.Resolve(ctx, models.ServerListQuery{
			Category: ptr("Gaming"),
			ServerID: ptr(d.music),
		}, models.AuthenticatedAs(d.u2))
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})

	t.Run("idempotent", func(t *testing.T) {
		params := models.ServerListQuery{Category: ptr("Gaming"), Quantity: ptr(5), WithNumMembers: true}
		first, err := d.filter.Resolve(ctx, params, models.Anonymous())
		require.NoError(t, err)
		second, err := d.filter.Resolve(ctx, params, models.Anonymous())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
