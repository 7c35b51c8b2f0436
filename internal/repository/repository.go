package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User    UserRepository
	Client  ClientRepository
	Request RequestRepository
	Part    PartRepository
	Comment CommentRepository
	Review  ReviewRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:    NewUserRepo(db),
		Client:  NewClientRepo(db),
		Request: NewRequestRepo(db),
		Part:    NewPartRepo(db),
		Comment: NewCommentRepo(db),
		Review:  NewReviewRepo(db),
	}
}
