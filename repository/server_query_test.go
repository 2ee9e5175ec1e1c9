package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerQuery_IsImmutable(t *testing.T) {
	base := NewServerQuery()
	baseSQL, _, err := base.ToSql()
	require.NoError(t, err)

	_ = base.InCategory("Gaming").MemberOf(7).WithMemberCount().Limit(3)

	afterSQL, afterArgs, err := base.ToSql()
	require.NoError(t, err)
	assert.Equal(t, baseSQL, afterSQL)
	assert.Empty(t, afterArgs)
	assert.False(t, base.HasMemberCount())
}

func TestServerQuery_ComposesFilters(t *testing.T) {
	q := NewServerQuery().
		InCategory("Music").
		MemberOf(42).
		WithMemberCount().
		Limit(5)

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "c.name = ?")
	assert.Contains(t, sql, "sm.user_id = ?")
	assert.Contains(t, sql, "AS num_members")
	assert.Contains(t, sql, "LIMIT 5")
	assert.Equal(t, []any{"Music", int64(42)}, args)
	assert.True(t, q.HasMemberCount())
}

func TestServerQuery_WithMemberCountIsIdempotent(t *testing.T) {
	once, _, err := NewServerQuery().WithMemberCount().ToSql()
	require.NoError(t, err)
	twice, _, err := NewServerQuery().WithMemberCount().WithMemberCount().ToSql()
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestServerQuery_NegativeLimitClampsToZero(t *testing.T) {
	sql, _, err := NewServerQuery().Limit(-3).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 0")
}
