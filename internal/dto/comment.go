package dto

// ── 评论与评价模块 DTO ──

// AddCommentRequest 追加评论
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}

// CommentResponse 评论条目（含作者姓名）
type CommentResponse struct {
	ID         string `json:"id"`
	RequestID  string `json:"request_id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	Text       string `json:"text"`
	CreatedAt  string `json:"created_at"`
}

// AddReviewRequest 客户评价
type AddReviewRequest struct {
	Rating  int    `json:"rating"  binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

// ReviewResponse 评价条目
type ReviewResponse struct {
	ID        string `json:"id"`
	RequestID string `json:"request_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}
