package repository

import (
	"testing"

	"github.com/mmissffitt/CineMax/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	user := seedUser(t, db, repos, "collector")
	movie := seedContent(t, db, "Movie", model.ContentTypeMovie, date(2021, 1, 1))

	require.NoError(t, repos.Favorite.Add(user.ID, movie.ID))
	// 重复收藏静默忽略
	require.NoError(t, repos.Favorite.Add(user.ID, movie.ID))

	count, err := repos.Favorite.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	favorited, err := repos.Favorite.IsFavorited(user.ID, movie.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestFavoriteRemove(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	user := seedUser(t, db, repos, "collector")
	movie := seedContent(t, db, "Movie", model.ContentTypeMovie, date(2021, 1, 1))

	require.NoError(t, repos.Favorite.Add(user.ID, movie.ID))
	require.NoError(t, repos.Favorite.Remove(user.ID, movie.ID))

	favorited, err := repos.Favorite.IsFavorited(user.ID, movie.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
}

func TestFavoriteListPreloadsContent(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	user := seedUser(t, db, repos, "collector")
	movie := seedContent(t, db, "Loved Movie", model.ContentTypeMovie, date(2021, 1, 1))

	require.NoError(t, repos.Favorite.Add(user.ID, movie.ID))

	favorites, err := repos.Favorite.ListByUser(user.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.NotNil(t, favorites[0].MediaContent)
	assert.Equal(t, "Loved Movie", favorites[0].MediaContent.Title)
}
