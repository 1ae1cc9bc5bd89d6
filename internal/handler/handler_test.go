package handler_test

import (
	"encoding/gob"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/mmissffitt/CineMax/internal/config"
	"github.com/mmissffitt/CineMax/internal/handler"
	"github.com/mmissffitt/CineMax/internal/model"
	"github.com/mmissffitt/CineMax/internal/repository"
	"github.com/mmissffitt/CineMax/internal/router"
	"github.com/mmissffitt/CineMax/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// capturedRender 记录最近一次渲染的模板名和数据，代替真实模板
type capturedRender struct {
	mu   sync.Mutex
	name string
	data gin.H
}

func (r *capturedRender) Instance(name string, data any) render.Render {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
	if h, ok := data.(gin.H); ok {
		r.data = h
	} else {
		r.data = nil
	}
	return &stubHTML{name: name}
}

func (r *capturedRender) last() (string, gin.H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.data
}

type stubHTML struct {
	name string
}

func (s *stubHTML) Render(w http.ResponseWriter) error {
	_, err := w.Write([]byte(s.name))
	return err
}

func (s *stubHTML) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type testApp struct {
	server   *httptest.Server
	repos    *repository.Repositories
	rendered *capturedRender
	client   *http.Client
	noFollow *http.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	gob.Register(model.SessionUser{})
	gin.SetMode(gin.TestMode)
	utils.InitCache()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	repos := repository.NewRepositories(db)
	cfg := &config.Config{
		Env:         "test",
		AppSecret:   "test-secret",
		TokenExpiry: time.Hour,
		SiteName:    "CineMax",
		SiteUrl:     "http://localhost",
	}

	rendered := &capturedRender{}
	engine := gin.New()
	store := cookie.NewStore([]byte(cfg.AppSecret))
	engine.Use(sessions.Sessions("cinemax_session", store))
	engine.HTMLRender = rendered

	h := handler.NewHandler(repos, cfg)
	router.RegisterRoutes(engine, h)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}
	noFollow := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{
		server:   server,
		repos:    repos,
		rendered: rendered,
		client:   client,
		noFollow: noFollow,
	}
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/html")
	resp, err := a.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func (a *testApp) getNoFollow(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/html")
	resp, err := a.noFollow.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := a.noFollow.PostForm(a.server.URL+path, form)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestRegisterPasswordMismatchLeavesAnonymous(t *testing.T) {
	app := newTestApp(t)

	resp := app.postForm(t, "/register", url.Values{
		"username":         {"dave"},
		"email":            {"dave@example.com"},
		"password":         {"password1"},
		"confirm_password": {"password2"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	name, data := app.rendered.last()
	assert.Equal(t, "register.html", name)
	assert.Equal(t, "两次输入的密码不一致", data["Error"])

	// 没有任何用户被创建
	count, err := app.repos.User.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// 会话仍是匿名：个人中心重定向到登录页
	resp = app.getNoFollow(t, "/profile")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/login")
}

func TestRegisterLoginProfileLogoutFlow(t *testing.T) {
	app := newTestApp(t)

	resp := app.postForm(t, "/register", url.Values{
		"username":         {"dave"},
		"email":            {"dave@example.com"},
		"password":         {"password1"},
		"confirm_password": {"password1"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// 登录态下个人中心展示注册信息
	resp = app.get(t, "/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	name, data := app.rendered.last()
	assert.Equal(t, "profile.html", name)
	user, ok := data["User"].(*model.User)
	require.True(t, ok)
	assert.Equal(t, "dave", user.Username)
	assert.Equal(t, "dave@example.com", user.Email)

	// 登出后回到匿名态
	app.get(t, "/logout")
	resp = app.getNoFollow(t, "/profile")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/login")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)
	_, err := app.repos.User.Create("erin", "erin@example.com", "rightpass")
	require.NoError(t, err)

	resp := app.postForm(t, "/login", url.Values{
		"username": {"erin"},
		"password": {"wrongpass"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	name, data := app.rendered.last()
	assert.Equal(t, "login.html", name)
	assert.Equal(t, "用户名或密码错误", data["Error"])

	resp = app.getNoFollow(t, "/profile")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestLoginSucceedsWithCheckedCredentials(t *testing.T) {
	app := newTestApp(t)
	_, err := app.repos.User.Create("erin", "erin@example.com", "rightpass")
	require.NoError(t, err)

	resp := app.postForm(t, "/login", url.Values{
		"username": {"erin"},
		"password": {"rightpass"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp = app.get(t, "/profile")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, data := app.rendered.last()
	user, ok := data["User"].(*model.User)
	require.True(t, ok)
	assert.Equal(t, "erin@example.com", user.Email)
}

func TestFeedbackFlagShowsExactlyOnce(t *testing.T) {
	app := newTestApp(t)

	resp := app.postForm(t, "/", url.Values{
		"name":    {"Гость"},
		"email":   {"guest@example.com"},
		"message": {"Отличный сайт"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// 第一次 GET：显示成功提示
	app.get(t, "/")
	_, data := app.rendered.last()
	assert.Equal(t, true, data["FeedbackSuccess"])

	// 第二次 GET：提示只出现一次
	app.get(t, "/")
	_, data = app.rendered.last()
	assert.Equal(t, false, data["FeedbackSuccess"])

	// 反馈内容已落库
	feedbacks, err := app.repos.Feedback.List("", 10, 0)
	require.NoError(t, err)
	require.Len(t, feedbacks, 1)
	assert.Equal(t, "guest@example.com", feedbacks[0].Email)
}

func TestFeedbackInvalidFormNotPersisted(t *testing.T) {
	app := newTestApp(t)

	resp := app.postForm(t, "/", url.Values{
		"name":    {"Гость"},
		"email":   {"not-an-email"},
		"message": {"привет"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	name, data := app.rendered.last()
	assert.Equal(t, "home.html", name)
	assert.NotEmpty(t, data["FeedbackError"])

	feedbacks, err := app.repos.Feedback.List("", 10, 0)
	require.NoError(t, err)
	assert.Len(t, feedbacks, 0)
}

func TestMovieDetailRejectsSeriesID(t *testing.T) {
	app := newTestApp(t)

	series := &model.MediaContent{
		Title:       "Actually A Series",
		ReleaseDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		ContentType: model.ContentTypeSeries,
	}
	require.NoError(t, app.repos.DB.Create(series).Error)

	resp := app.get(t, "/movie/"+strconv.Itoa(series.ID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	name, _ := app.rendered.last()
	assert.Equal(t, "404.html", name)

	// 正确的类型路径可以访问
	resp = app.get(t, "/series/"+strconv.Itoa(series.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	name, _ = app.rendered.last()
	assert.Equal(t, "series_detail.html", name)
}
