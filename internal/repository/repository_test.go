package repository

import (
	"testing"
	"time"

	"github.com/mmissffitt/CineMax/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 内存 sqlite，限制单连接避免 :memory: 多连接各自为政
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func seedContent(t *testing.T, db *gorm.DB, title, contentType string, release time.Time) *model.MediaContent {
	t.Helper()
	content := &model.MediaContent{
		Title:          title,
		Description:    title + " 描述",
		ReleaseDate:    release,
		Country:        "US",
		AgeRestriction: 16,
		ContentType:    contentType,
	}
	require.NoError(t, db.Create(content).Error)
	return content
}

func seedSeason(t *testing.T, db *gorm.DB, contentID, number int) *model.Season {
	t.Helper()
	season := &model.Season{MediaContentID: contentID, SeasonNumber: number}
	require.NoError(t, db.Create(season).Error)
	return season
}

func seedEpisode(t *testing.T, db *gorm.DB, seasonID, number int, title string) *model.Episode {
	t.Helper()
	episode := &model.Episode{
		SeasonID:      seasonID,
		EpisodeNumber: number,
		Title:         title,
		Duration:      45,
	}
	require.NoError(t, db.Create(episode).Error)
	return episode
}

func seedUser(t *testing.T, db *gorm.DB, repos *Repositories, username string) *model.User {
	t.Helper()
	user, err := repos.User.Create(username, username+"@example.com", "password123")
	require.NoError(t, err)
	return user
}
