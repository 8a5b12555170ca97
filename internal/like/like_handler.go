package like

import (
	"bbs/internal/svc"
)

type LikeHandler struct {
	svc *svc.ServiceContext
}

func NewLikeHandler(svc *svc.ServiceContext) *LikeHandler {
	return &LikeHandler{svc: svc}
}
