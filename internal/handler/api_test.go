package handler_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/mmissffitt/CineMax/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signUp(t *testing.T, app *testApp, username string) {
	t.Helper()
	resp := app.postForm(t, "/register", url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"password":         {"password1"},
		"confirm_password": {"password1"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
}

func seedMovie(t *testing.T, app *testApp, title string) *model.MediaContent {
	t.Helper()
	movie := &model.MediaContent{
		Title:       title,
		ReleaseDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		ContentType: model.ContentTypeMovie,
	}
	require.NoError(t, app.repos.DB.Create(movie).Error)
	return movie
}

func TestFavoriteAPIRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	movie := seedMovie(t, app, "Movie")

	resp, err := app.client.Post(app.server.URL+"/api/favorites/"+strconv.Itoa(movie.ID), "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFavoriteAPIAddRemove(t *testing.T) {
	app := newTestApp(t)
	movie := seedMovie(t, app, "Movie")
	signUp(t, app, "frank")

	resp, err := app.client.Post(app.server.URL+"/api/favorites/"+strconv.Itoa(movie.ID), "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	user, err := app.repos.User.FindByUsername("frank")
	require.NoError(t, err)
	favorited, err := app.repos.Favorite.IsFavorited(user.ID, movie.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	req, err := http.NewRequest(http.MethodDelete, app.server.URL+"/api/favorites/"+strconv.Itoa(movie.ID), nil)
	require.NoError(t, err)
	resp, err = app.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	favorited, err = app.repos.Favorite.IsFavorited(user.ID, movie.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
}

func TestHistorySyncRejectsAmbiguousTarget(t *testing.T) {
	app := newTestApp(t)
	movie := seedMovie(t, app, "Movie")
	signUp(t, app, "gina")

	// 同时指定内容和单集
	resp, err := app.client.PostForm(app.server.URL+"/api/history/sync", url.Values{
		"content_id":     {strconv.Itoa(movie.ID)},
		"episode_id":     {"1"},
		"viewed_seconds": {"60"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	user, err := app.repos.User.FindByUsername("gina")
	require.NoError(t, err)
	count, err := app.repos.History.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestHistorySyncRecordsContentView(t *testing.T) {
	app := newTestApp(t)
	movie := seedMovie(t, app, "Movie")
	signUp(t, app, "hank")

	resp, err := app.client.PostForm(app.server.URL+"/api/history/sync", url.Values{
		"content_id":     {strconv.Itoa(movie.ID)},
		"viewed_seconds": {"645"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)

	user, err := app.repos.User.FindByUsername("hank")
	require.NoError(t, err)
	histories, err := app.repos.History.ListByUser(user.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, 645, histories[0].ViewedSeconds)
	require.NotNil(t, histories[0].MediaContentID)
	assert.Equal(t, movie.ID, *histories[0].MediaContentID)
	assert.Nil(t, histories[0].EpisodeID)
}
