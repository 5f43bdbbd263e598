package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance-server/internal/domain"
	"attendance-server/internal/repository"
)

func newUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	db := setupDB(t)
	r := NewUserRepository(db)
	require.NoError(t, r.Init(context.Background()))
	return r
}

func TestUserInsert_AssignsIDAndTimestamp(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	user := &domain.User{Username: "jdoe", Password: "secret", DisplayName: "J. Doe"}
	id, err := r.Insert(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserInsert_DuplicateUsername(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	_, err := r.Insert(ctx, &domain.User{Username: "jdoe", Password: "a", DisplayName: "A"})
	require.NoError(t, err)

	_, err = r.Insert(ctx, &domain.User{Username: "jdoe", Password: "b", DisplayName: "B"})
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserGet_ProjectionOmitsPassword(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	id, err := r.Insert(ctx, &domain.User{Username: "jdoe", Password: "secret", DisplayName: "J. Doe"})
	require.NoError(t, err)

	user, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "jdoe", user.Username)
	assert.Empty(t, user.Password)
}

func TestUserGet_Absent(t *testing.T) {
	r := newUserRepo(t)

	user, err := r.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserLookupByUsername_CaseInsensitive(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	_, err := r.Insert(ctx, &domain.User{Username: "Admin", Password: "Admin", DisplayName: "Administrator"})
	require.NoError(t, err)

	user, err := r.LookupByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Admin", user.Username)
	assert.Equal(t, "Admin", user.Password)

	exact, err := r.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, exact)
}

func TestUserUpdate_RowsAffected(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	id, err := r.Insert(ctx, &domain.User{Username: "jdoe", Password: "secret", DisplayName: "J. Doe"})
	require.NoError(t, err)

	aff, err := r.Update(ctx, id, "Jane Doe", "blob", "/uploads/x.png")
	require.NoError(t, err)
	assert.EqualValues(t, 1, aff)

	aff, err = r.Update(ctx, id+100, "Nobody", "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 0, aff)
}

func TestUserUpdate_DoesNotTouchCredentials(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	id, err := r.Insert(ctx, &domain.User{Username: "jdoe", Password: "secret", DisplayName: "J. Doe"})
	require.NoError(t, err)

	_, err = r.Update(ctx, id, "Jane Doe", "", "")
	require.NoError(t, err)

	user, err := r.GetByUsername(ctx, "jdoe")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "secret", user.Password)
	assert.Equal(t, "Jane Doe", user.DisplayName)
}

func TestUserDelete_RowsAffected(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	id, err := r.Insert(ctx, &domain.User{Username: "jdoe", Password: "secret", DisplayName: "J. Doe"})
	require.NoError(t, err)

	aff, err := r.Delete(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, aff)

	aff, err = r.Delete(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, aff)
}

func TestUserList_InsertionOrder(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	for _, name := range []string{"zoe", "adam", "mia"} {
		_, err := r.Insert(ctx, &domain.User{Username: name, Password: "x", DisplayName: name})
		require.NoError(t, err)
	}

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "zoe", users[0].Username)
	assert.Equal(t, "adam", users[1].Username)
	assert.Equal(t, "mia", users[2].Username)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}
