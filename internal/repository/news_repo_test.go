package repository

import (
	"testing"
	"time"

	"gamepulse-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.News{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createNews(t *testing.T, db *gorm.DB, authorID int64, title, slug string) *model.News {
	t.Helper()
	now := time.Now()
	news := &model.News{
		AuthorID:    authorID,
		Title:       title,
		Body:        "正文内容",
		Slug:        slug,
		Status:      model.NewsStatusPublished,
		PublishedAt: &now,
	}
	if err := db.Create(news).Error; err != nil {
		t.Fatalf("create news: %v", err)
	}
	return news
}

func TestListReturnsFullRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNewsRepository(db)

	author := &model.User{
		Email: "editor@example.com", UserName: "editor",
		Password: "hashed", UserRole: model.RoleEditor, IsActive: true,
	}
	require.NoError(t, db.Create(author).Error)

	createNews(t, db, author.ID, "Elden Ring DLC 上线", "elden-ring-dlc")
	createNews(t, db, author.ID, "Zelda 新作评测", "zelda-review")

	published := model.NewsStatusPublished
	news, total, err := repo.List(0, 20, &NewsFilter{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, news, 2)

	// Count 不得污染行查询：每行的全部列都要回填
	for _, row := range news {
		assert.NotEmpty(t, row.Title)
		assert.NotEmpty(t, row.Slug)
		assert.NotEmpty(t, row.Body)
		assert.Equal(t, model.NewsStatusPublished, row.Status)
		assert.Equal(t, author.ID, row.AuthorID)
	}
}

func TestListCategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNewsRepository(db)

	author := &model.User{
		Email: "editor@example.com", UserName: "editor",
		Password: "hashed", UserRole: model.RoleEditor, IsActive: true,
	}
	require.NoError(t, db.Create(author).Error)

	rpg := &model.Category{Name: "RPG", Slug: "rpg"}
	require.NoError(t, db.Create(rpg).Error)

	tagged := createNews(t, db, author.ID, "Elden Ring DLC 上线", "elden-ring-dlc")
	require.NoError(t, repo.ReplaceCategories(tagged, []model.Category{*rpg}))
	createNews(t, db, author.ID, "Zelda 新作评测", "zelda-review")

	published := model.NewsStatusPublished
	slug := "rpg"
	news, total, err := repo.List(0, 20, &NewsFilter{Status: &published, CategorySlug: &slug})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, news, 1)
	assert.Equal(t, "elden-ring-dlc", news[0].Slug)
	assert.Equal(t, "Elden Ring DLC 上线", news[0].Title)
}
