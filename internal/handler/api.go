package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmissffitt/CineMax/internal/middleware"
	"github.com/mmissffitt/CineMax/internal/model"
	"github.com/mmissffitt/CineMax/internal/utils"
)

// AddFavorite 收藏内容
func (h *Handler) AddFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	contentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || contentID <= 0 {
		utils.BadRequest(c, "无效的内容 ID")
		return
	}

	if err := h.Repos.Favorite.Add(userID, contentID); err != nil {
		utils.InternalServerError(c, "收藏失败")
		return
	}

	utils.Success(c, gin.H{"favorited": true})
}

// RemoveFavorite 取消收藏
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	contentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || contentID <= 0 {
		utils.BadRequest(c, "无效的内容 ID")
		return
	}

	if err := h.Repos.Favorite.Remove(userID, contentID); err != nil {
		utils.InternalServerError(c, "取消收藏失败")
		return
	}

	utils.Success(c, gin.H{"favorited": false})
}

// syncHistoryRequest 观看进度上报
// ContentID 与 EpisodeID 只能填一个：电影填前者，剧集单集填后者
type syncHistoryRequest struct {
	ContentID     int `json:"content_id" form:"content_id"`
	EpisodeID     int `json:"episode_id" form:"episode_id"`
	ViewedSeconds int `json:"viewed_seconds" form:"viewed_seconds"`
}

// SyncHistory 写入观看历史
func (h *Handler) SyncHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	var req syncHistoryRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequest(c, "参数错误")
		return
	}
	if req.ViewedSeconds < 0 {
		utils.BadRequest(c, "参数错误")
		return
	}

	var record *model.ViewHistory
	switch {
	case req.ContentID > 0 && req.EpisodeID > 0, req.ContentID <= 0 && req.EpisodeID <= 0:
		utils.BadRequest(c, "必须且只能指定内容或单集之一")
		return
	case req.ContentID > 0:
		record = model.NewContentView(userID, req.ContentID, req.ViewedSeconds)
	default:
		record = model.NewEpisodeView(userID, req.EpisodeID, req.ViewedSeconds)
	}

	if err := h.Repos.History.Record(record); err != nil {
		if errors.Is(err, model.ErrViewTarget) {
			utils.BadRequest(c, "必须且只能指定内容或单集之一")
			return
		}
		utils.InternalServerError(c, "记录失败")
		return
	}

	utils.Success(c, gin.H{"id": record.ID})
}
