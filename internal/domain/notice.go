package domain

import "time"

type NoticeKind string

const (
	NoticePermissionDenied    NoticeKind = "permission_denied"
	NoticeLocationUnavailable NoticeKind = "location_unavailable"
	NoticeCategoriesFailed    NoticeKind = "categories_failed"
	NoticePointsFailed        NoticeKind = "points_failed"
)

// Notice - неблокирующее сообщение для пользователя
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	At      time.Time  `json:"at"`
}
