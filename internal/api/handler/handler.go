package handler

import "github.com/melluro/repair-requests-system-2026/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Client  *ClientHandler
	Request *RequestHandler
	Part    *PartHandler
	Stats   *StatsHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		User:    NewUserHandler(svc.User),
		Client:  NewClientHandler(svc.Client),
		Request: NewRequestHandler(svc.Request, svc.Comment, svc.Review),
		Part:    NewPartHandler(svc.Part),
		Stats:   NewStatsHandler(svc.Stats),
	}
}
