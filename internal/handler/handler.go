package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mmissffitt/CineMax/internal/config"
	"github.com/mmissffitt/CineMax/internal/model"
	"github.com/mmissffitt/CineMax/internal/repository"
	"github.com/mmissffitt/CineMax/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos    *repository.Repositories
	Config   *config.Config
	Catalog  *service.CatalogService
	validate *validator.Validate
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:    repos,
		Config:   cfg,
		Catalog:  service.NewCatalogService(repos.Content, repos.Episode),
		validate: validator.New(),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
	}

	// 注入用户信息
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			res["UserInfo"] = su
			res["IsAuthenticated"] = true
		}
	}

	// 菜单高亮逻辑
	res["ActiveMenu"] = h.getActiveMenu(c.Request.URL.Path)

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// getActiveMenu 根据路径判断当前高亮菜单
func (h *Handler) getActiveMenu(path string) string {
	switch path {
	case "/":
		return "home"
	case "/movies":
		return "movies"
	case "/series":
		return "series"
	case "/plans":
		return "plans"
	case "/profile":
		return "user"
	default:
		return ""
	}
}

// renderNotFound 输出 404 页面
func (h *Handler) renderNotFound(c *gin.Context, title string) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": title + " - " + h.Config.SiteName,
	}))
}

// pathID 解析路径中的数字 ID，非法时返回 false
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ==================== 公开页面 ====================

// feedbackForm 首页反馈表单
type feedbackForm struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required"`
}

// Home 首页：电影/剧集各取一组样例
func (h *Handler) Home(c *gin.Context) {
	view, err := h.Catalog.Home()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "home.html", h.RenderData(c, gin.H{
			"Title": h.Config.SiteName,
			"Error": "加载首页数据失败",
		}))
		return
	}

	// 一次性读取反馈成功标记：读即删除，刷新不会再次出现
	session := sessions.Default(c)
	feedbackSuccess := false
	if flag := session.Get("feedback_success"); flag != nil {
		feedbackSuccess = true
		session.Delete("feedback_success")
		session.Save()
	}

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title":           "首页 - " + h.Config.SiteName,
		"MoviesSample":    view.MoviesSample,
		"SeriesSample":    view.SeriesSample,
		"FeedbackSuccess": feedbackSuccess,
	}))
}

// SubmitFeedback 首页反馈提交（POST /），成功后重定向避免刷新重复提交
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var form feedbackForm

	renderError := func(msg string) {
		view, _ := h.Catalog.Home()
		data := gin.H{
			"Title":         "首页 - " + h.Config.SiteName,
			"FeedbackError": msg,
			"FeedbackForm":  form,
		}
		if view != nil {
			data["MoviesSample"] = view.MoviesSample
			data["SeriesSample"] = view.SeriesSample
		}
		c.HTML(http.StatusOK, "home.html", h.RenderData(c, data))
	}

	if err := c.ShouldBind(&form); err != nil {
		renderError("请完整填写反馈内容")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		renderError("请完整填写反馈内容，并使用有效邮箱")
		return
	}

	feedback := &model.Feedback{
		Name:    form.Name,
		Email:   form.Email,
		Message: form.Message,
	}
	if err := h.Repos.Feedback.Create(feedback); err != nil {
		renderError("反馈提交失败，请重试")
		return
	}

	session := sessions.Default(c)
	session.Set("feedback_success", true)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

// Movies 电影列表，上映日期倒序
func (h *Handler) Movies(c *gin.Context) {
	movies, err := h.Repos.Content.ListMovies()
	if err != nil {
		movies = nil
	}

	c.HTML(http.StatusOK, "movies.html", h.RenderData(c, gin.H{
		"Title":  "电影 - " + h.Config.SiteName,
		"Movies": movies,
	}))
}

// Series 剧集列表，上映日期倒序
func (h *Handler) Series(c *gin.Context) {
	series, err := h.Repos.Content.ListSeries()
	if err != nil {
		series = nil
	}

	c.HTML(http.StatusOK, "series.html", h.RenderData(c, gin.H{
		"Title":  "剧集 - " + h.Config.SiteName,
		"Series": series,
	}))
}

// MovieDetail 电影详情页；ID 不存在或对应的是剧集时返回 404
func (h *Handler) MovieDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.renderNotFound(c, "电影未找到")
		return
	}

	view, err := h.Catalog.MovieDetail(id)
	if err != nil {
		if contentNotFound(err) {
			h.renderNotFound(c, "电影未找到")
		} else {
			c.HTML(http.StatusInternalServerError, "404.html", h.RenderData(c, gin.H{
				"Title": "加载失败 - " + h.Config.SiteName,
			}))
		}
		return
	}

	c.HTML(http.StatusOK, "movie.html", h.RenderData(c, gin.H{
		"Title":       view.Movie.Title + " - " + h.Config.SiteName,
		"Movie":       view.Movie,
		"GenreNames":  view.GenreNames,
		"IsFavorited": h.isFavorited(c, view.Movie.ID),
	}))
}

// SeriesDetail 剧集详情页，带全部季/集与总集数
func (h *Handler) SeriesDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.renderNotFound(c, "剧集未找到")
		return
	}

	view, err := h.Catalog.SeriesDetail(id)
	if err != nil {
		if contentNotFound(err) {
			h.renderNotFound(c, "剧集未找到")
		} else {
			c.HTML(http.StatusInternalServerError, "404.html", h.RenderData(c, gin.H{
				"Title": "加载失败 - " + h.Config.SiteName,
			}))
		}
		return
	}

	c.HTML(http.StatusOK, "series_detail.html", h.RenderData(c, gin.H{
		"Title":         view.Series.Title + " - " + h.Config.SiteName,
		"Series":        view.Series,
		"GenreNames":    view.GenreNames,
		"Seasons":       view.Series.Seasons,
		"TotalEpisodes": view.TotalEpisodes,
		"IsFavorited":   h.isFavorited(c, view.Series.ID),
	}))
}

// EpisodeDetail 单集详情页，带前后集导航
func (h *Handler) EpisodeDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.renderNotFound(c, "剧集未找到")
		return
	}

	view, err := h.Catalog.EpisodeDetail(id)
	if err != nil {
		h.renderNotFound(c, "剧集未找到")
		return
	}

	c.HTML(http.StatusOK, "episode.html", h.RenderData(c, gin.H{
		"Title":    view.Series.Title + " - " + view.Episode.Title + " - " + h.Config.SiteName,
		"Episode":  view.Episode,
		"Season":   view.Episode.Season,
		"Series":   view.Series,
		"Previous": view.Previous,
		"Next":     view.Next,
	}))
}

// PersonDetail 人物页，带参演作品
func (h *Handler) PersonDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.renderNotFound(c, "人物未找到")
		return
	}

	person, err := h.Repos.Person.FindByID(id)
	if err != nil {
		h.renderNotFound(c, "人物未找到")
		return
	}

	c.HTML(http.StatusOK, "person.html", h.RenderData(c, gin.H{
		"Title":   person.DisplayName() + " - " + h.Config.SiteName,
		"Person":  person,
		"Credits": person.Participations,
	}))
}

// Plans 订阅套餐页
func (h *Handler) Plans(c *gin.Context) {
	plans, err := h.Repos.Subscription.ListPlans()
	if err != nil {
		plans = nil
	}

	c.HTML(http.StatusOK, "plans.html", h.RenderData(c, gin.H{
		"Title": "订阅套餐 - " + h.Config.SiteName,
		"Plans": plans,
	}))
}

// isFavorited 当前登录用户是否已收藏该内容
func (h *Handler) isFavorited(c *gin.Context, contentID int) bool {
	session := sessions.Default(c)
	userinfo := session.Get("userinfo")
	su, ok := userinfo.(model.SessionUser)
	if !ok {
		return false
	}
	favorited, _ := h.Repos.Favorite.IsFavorited(su.ID, contentID)
	return favorited
}

// contentNotFound 判断是否为目录 404 类错误
func contentNotFound(err error) bool {
	return errors.Is(err, repository.ErrContentNotFound) ||
		errors.Is(err, repository.ErrEpisodeNotFound) ||
		errors.Is(err, repository.ErrPersonNotFound)
}
