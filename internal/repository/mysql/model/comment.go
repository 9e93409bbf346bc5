package model

import (
	"time"

	"github.com/Guyuepp/forum-comments/domain"
)

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	TopicID   int64     `gorm:"column:topic_id;not null;index:idx_comments_topic_created,priority:1"`
	UserID    int64     `gorm:"column:user_id;not null"`
	ParentID  *int64    `gorm:"column:parent_id;index"`
	Content   string    `gorm:"type:varchar(800);not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);index:idx_comments_topic_created,priority:2"`
	UpdatedAt time.Time `gorm:"type:datetime(3)"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		TopicID:   c.TopicID,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		TopicID:   m.TopicID,
		UserID:    m.UserID,
		ParentID:  m.ParentID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
