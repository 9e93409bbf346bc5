package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Guyuepp/forum-comments/domain"
	"github.com/Guyuepp/forum-comments/internal/repository/mysql/model"
)

type topicRepository struct {
	DB *gorm.DB
}

var _ domain.TopicRepository = (*topicRepository)(nil)

// NewTopicRepository 创建数据库操作层
func NewTopicRepository(db *gorm.DB) *topicRepository {
	return &topicRepository{db}
}

func (m *topicRepository) GetByID(ctx context.Context, id int64) (res domain.Topic, err error) {
	var topic model.Topic
	err = m.DB.WithContext(ctx).First(&topic, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res, domain.ErrNotFound
	}
	if err != nil {
		return res, err
	}
	res = topic.ToDomain()
	return
}

func (m *topicRepository) Store(ctx context.Context, t *domain.Topic) error {
	topicModel := model.NewTopicFromDomain(t)
	if err := m.DB.WithContext(ctx).Create(topicModel).Error; err != nil {
		return err
	}
	t.ID = topicModel.ID
	t.CreatedAt = topicModel.CreatedAt
	t.UpdatedAt = topicModel.UpdatedAt
	return nil
}

// Touch keeps the greatest timestamp so that touches applied out of order
// never move updated_at backwards.
func (m *topicRepository) Touch(ctx context.Context, id int64, at time.Time) error {
	return m.DB.WithContext(ctx).
		Model(&model.Topic{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", gorm.Expr("GREATEST(updated_at, ?)", at)).
		Error
}

func (m *topicRepository) AddViews(ctx context.Context, id int64, deltaViews int64) error {
	result := m.DB.WithContext(ctx).
		Model(&model.Topic{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", deltaViews))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (m *topicRepository) FetchIDs(ctx context.Context, cursor, limit int64) (ids []int64, err error) {
	err = m.DB.WithContext(ctx).
		Model(&model.Topic{}).
		Select("id").
		Where("id > ?", cursor).
		Order("id").
		Limit(int(limit)).
		Find(&ids).Error
	return
}
