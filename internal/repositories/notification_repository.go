package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	GetByRecipientID(ctx context.Context, recipientID uint, limit, offset int) ([]models.Notification, int64, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uint) error
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
	DeleteByTargets(ctx context.Context, kind models.TargetKind, ids []uint) error
	DeleteForPostComments(ctx context.Context, postID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if err := notification.Target().Validate(); err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return translate(err, "notification", notification.RecipientID)
	}
	return nil
}

func (r *postgresNotificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, translate(err, "notification", id)
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, limit, offset int) ([]models.Notification, int64, error) {
	var (
		notifications []models.Notification
		total         int64
	)
	base := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Session(&gorm.Session{})

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "notification", recipientID)
	}
	err := base.Preload("Actor").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, translate(err, "notification", recipientID)
	}
	return notifications, total, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND unread = ?", recipientID, true).
		Count(&count).Error
	return count, translate(err, "notification", recipientID)
}

func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID uint) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("unread", false).Error
	return translate(err, "notification", notificationID)
}

// MarkAllAsRead clears every unread flag of recipientID and returns how many changed
func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND unread = ?", recipientID, true).
		Update("unread", false)
	if res.Error != nil {
		return 0, translate(res.Error, "notification", recipientID)
	}
	return res.RowsAffected, nil
}

// DeleteByTargets removes notifications pointing at any of the given entities
func (r *postgresNotificationRepository) DeleteByTargets(ctx context.Context, kind models.TargetKind, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id IN ?", kind, ids).
		Delete(&models.Notification{}).Error
	return translate(err, "notification", nil)
}

// DeleteForPostComments removes notifications pointing at any comment under postID
func (r *postgresNotificationRepository) DeleteForPostComments(ctx context.Context, postID uint) error {
	db := r.db.WithContext(ctx)
	err := db.Where("target_kind = ? AND target_id IN (?)", models.TargetComment,
		db.Model(&models.Comment{}).Select("id").Where("post_id = ?", postID),
	).Delete(&models.Notification{}).Error
	return translate(err, "notification", postID)
}
