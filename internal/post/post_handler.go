package post

import (
	"bbs/internal/svc"
)

type PostHandler struct {
	svc *svc.ServiceContext
}

func NewPostHandler(svc *svc.ServiceContext) *PostHandler {
	return &PostHandler{svc: svc}
}
