package service

import (
	"fmt"
	"log"
	"time"

	"github.com/mmissffitt/CineMax/internal/model"
	"github.com/mmissffitt/CineMax/internal/repository"
	"github.com/mmissffitt/CineMax/internal/utils"
	"golang.org/x/sync/singleflight"
)

// 首页每种类型的抽样条数
const homeSampleSize = 4

// HomeView 首页视图模型
type HomeView struct {
	MoviesSample []*model.MediaContent
	SeriesSample []*model.MediaContent
}

// MovieDetailView 电影详情视图模型
type MovieDetailView struct {
	Movie      *model.MediaContent
	GenreNames []string
}

// SeriesDetailView 剧集详情视图模型
type SeriesDetailView struct {
	Series        *model.MediaContent
	GenreNames    []string
	TotalEpisodes int
}

// EpisodeDetailView 单集详情视图模型
type EpisodeDetailView struct {
	Episode  *model.Episode
	Series   *model.MediaContent
	Previous *model.Episode
	Next     *model.Episode
}

// CatalogService 目录读取服务：详情页走 LRU 缓存，并发未命中用 singleflight 合并
type CatalogService struct {
	contentRepo *repository.ContentRepository
	episodeRepo *repository.EpisodeRepository

	movieCache  *utils.DetailCache[*MovieDetailView]
	seriesCache *utils.DetailCache[*SeriesDetailView]
	sf          singleflight.Group
}

// NewCatalogService 创建目录服务
func NewCatalogService(contentRepo *repository.ContentRepository, episodeRepo *repository.EpisodeRepository) *CatalogService {
	return &CatalogService{
		contentRepo: contentRepo,
		episodeRepo: episodeRepo,
		movieCache:  utils.NewDetailCache[*MovieDetailView](500, 10*time.Minute),
		seriesCache: utils.NewDetailCache[*SeriesDetailView](500, 10*time.Minute),
	}
}

// Home 首页抽样，进程内缓存 5 分钟
func (s *CatalogService) Home() (*HomeView, error) {
	const key = "home_samples"
	if cached, ok := utils.CacheGet(key); ok {
		return cached.(*HomeView), nil
	}

	movies, err := s.contentRepo.Samples(model.ContentTypeMovie, homeSampleSize)
	if err != nil {
		return nil, err
	}
	series, err := s.contentRepo.Samples(model.ContentTypeSeries, homeSampleSize)
	if err != nil {
		return nil, err
	}

	view := &HomeView{MoviesSample: movies, SeriesSample: series}
	utils.CacheSet(key, view, 5*time.Minute)
	return view, nil
}

// MovieDetail 电影详情
func (s *CatalogService) MovieDetail(id int) (*MovieDetailView, error) {
	key := fmt.Sprintf("movie:%d", id)
	if view, ok := s.movieCache.Get(key); ok {
		return view, nil
	}

	// singleflight 避免并发回源同一个 ID
	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		movie, err := s.contentRepo.MovieDetail(id)
		if err != nil {
			return nil, err
		}
		view := &MovieDetailView{
			Movie:      movie,
			GenreNames: s.genreNames(movie),
		}
		s.movieCache.Set(key, view)
		return view, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*MovieDetailView), nil
}

// SeriesDetail 剧集详情，含季/集与总集数
func (s *CatalogService) SeriesDetail(id int) (*SeriesDetailView, error) {
	key := fmt.Sprintf("series:%d", id)
	if view, ok := s.seriesCache.Get(key); ok {
		return view, nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		series, total, err := s.contentRepo.SeriesDetail(id)
		if err != nil {
			return nil, err
		}
		view := &SeriesDetailView{
			Series:        series,
			GenreNames:    s.genreNames(series),
			TotalEpisodes: total,
		}
		s.seriesCache.Set(key, view)
		return view, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*SeriesDetailView), nil
}

// EpisodeDetail 单集详情，带前后集与所属剧集
func (s *CatalogService) EpisodeDetail(id int) (*EpisodeDetailView, error) {
	episode, series, err := s.episodeRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	prev, err := s.episodeRepo.Previous(episode)
	if err != nil {
		return nil, err
	}
	next, err := s.episodeRepo.Next(episode)
	if err != nil {
		return nil, err
	}

	return &EpisodeDetailView{
		Episode:  episode,
		Series:   series,
		Previous: prev,
		Next:     next,
	}, nil
}

// Invalidate 清除详情缓存（内容在后台被修改后调用）
func (s *CatalogService) Invalidate(contentType string, id int) {
	switch contentType {
	case model.ContentTypeMovie:
		s.movieCache.Delete(fmt.Sprintf("movie:%d", id))
	case model.ContentTypeSeries:
		s.seriesCache.Delete(fmt.Sprintf("series:%d", id))
	}
	utils.CacheDelete("home_samples")
}

// genreNames 优先走数据库聚合查询，失败时退回已加载的关联数据
func (s *CatalogService) genreNames(content *model.MediaContent) []string {
	names, err := s.contentRepo.GenreNames(content.ID)
	if err == nil {
		return names
	}
	log.Printf("[CatalogService] 类型聚合查询失败，使用关联数据: %v", err)

	names = make([]string, 0, len(content.Genres))
	for _, g := range content.Genres {
		names = append(names, g.Name)
	}
	return names
}
