package dto

type NotificationQuery struct {
	Unread bool `form:"unread"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64  `json:"updated"`
	Message string `json:"message"`
}
