package reply

import (
	"bbs/internal/svc"
)

type ReplyHandler struct {
	svc *svc.ServiceContext
}

func NewReplyHandler(svc *svc.ServiceContext) *ReplyHandler {
	return &ReplyHandler{svc: svc}
}
