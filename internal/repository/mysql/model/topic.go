package model

import (
	"time"

	"github.com/Guyuepp/forum-comments/domain"
)

type Topic struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	Views     int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"type:datetime(3)"`
	UpdatedAt time.Time `gorm:"type:datetime(3)"`
}

func (Topic) TableName() string {
	return "topics"
}

func (m *Topic) ToDomain() domain.Topic {
	return domain.Topic{
		ID:        m.ID,
		UserID:    m.UserID,
		Content:   m.Content,
		Views:     m.Views,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewTopicFromDomain(t *domain.Topic) *Topic {
	return &Topic{
		ID:        t.ID,
		UserID:    t.UserID,
		Content:   t.Content,
		Views:     t.Views,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
