package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mmissffitt/CineMax/internal/middleware"
	"github.com/mmissffitt/CineMax/internal/model"
)

// loginForm 登录表单
type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// registerForm 注册表单
type registerForm struct {
	Username        string `form:"username" validate:"required,min=2,max=30"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	// 已登录直接跳转首页
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "登录 - " + h.Config.SiteName,
		"Redirect": c.Query("redirect"),
	}))
}

// Login 登录处理：用户名 + 密码，校验失败停留在登录页
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)
	redirect := c.PostForm("redirect")
	if redirect == "" || !strings.HasPrefix(redirect, "/") {
		redirect = "/"
	}

	renderError := func(msg string) {
		c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
			"Title":    "登录 - " + h.Config.SiteName,
			"Username": form.Username,
			"Error":    msg,
		}))
	}

	if err := h.validate.Struct(form); err != nil {
		renderError("请输入用户名和密码")
		return
	}

	// 查找用户并验证密码；两种失败给同一种提示
	user, err := h.Repos.User.FindByUsername(form.Username)
	if err != nil || user == nil || !h.Repos.User.CheckPassword(user, form.Password) {
		renderError("用户名或密码错误")
		return
	}

	if err := h.signIn(c, user); err != nil {
		renderError("登录失败，请重试")
		return
	}

	c.Redirect(http.StatusFound, redirect)
}

// RegisterPage 注册页面
func (h *Handler) RegisterPage(c *gin.Context) {
	// 已登录直接跳转首页
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
		"Title": "注册 - " + h.Config.SiteName,
	}))
}

// Register 注册处理：任何校验失败都不落库、不登录
func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	_ = c.ShouldBind(&form)

	renderError := func(msg string) {
		c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
			"Title":    "注册 - " + h.Config.SiteName,
			"Username": form.Username,
			"Email":    form.Email,
			"Error":    msg,
		}))
	}

	if form.Password != form.ConfirmPassword {
		renderError("两次输入的密码不一致")
		return
	}

	if err := h.validate.Struct(form); err != nil {
		renderError("请检查填写内容：用户名 2-30 位，密码至少 6 位，邮箱需有效")
		return
	}

	// 检查用户名与邮箱占用
	if existing, _ := h.Repos.User.FindByUsername(form.Username); existing != nil {
		renderError("该用户名已被占用")
		return
	}
	if existing, _ := h.Repos.User.FindByEmail(form.Email); existing != nil {
		renderError("该邮箱已被注册")
		return
	}

	user, err := h.Repos.User.Create(form.Username, form.Email, form.Password)
	if err != nil {
		renderError("注册失败，请重试")
		return
	}

	if err := h.signIn(c, user); err != nil {
		renderError("注册成功但自动登录失败，请手动登录")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Profile 个人中心（需要登录，由 RequireAuth 保证）
func (h *Handler) Profile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.Repos.User.FindByID(userID)
	if err != nil || user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	favoriteCount, _ := h.Repos.Favorite.CountByUser(userID)
	historyCount, _ := h.Repos.History.CountByUser(userID)
	favorites, _ := h.Repos.Favorite.ListByUser(userID, 20, 0)
	histories, _ := h.Repos.History.ListByUser(userID, 20, 0)
	activeSub, _ := h.Repos.Subscription.ActiveForUser(userID)

	c.HTML(http.StatusOK, "profile.html", h.RenderData(c, gin.H{
		"Title":         "个人中心 - " + h.Config.SiteName,
		"User":          user,
		"FavoriteCount": favoriteCount,
		"HistoryCount":  historyCount,
		"Favorites":     favorites,
		"History":       histories,
		"Subscription":  activeSub,
	}))
}

// Logout 登出：清除 Token 与全部 Session 状态
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

// signIn 登录态建立：签发 Token Cookie 并把用户信息写入 Session
func (h *Handler) signIn(c *gin.Context, user *model.User) error {
	token, err := middleware.GenerateToken(user.ID, user.Username, user.Email, h.Config.AppSecret, h.Config.TokenExpiry)
	if err != nil {
		return err
	}
	c.SetCookie("token", token, int(h.Config.TokenExpiry.Seconds()), "/", "", false, true)

	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	return session.Save()
}
