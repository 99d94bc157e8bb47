package models

// DeviceToken mirrors a row of the device_tokens table. Rows are never
// hard-deleted; is_active carries the logical delete.
type DeviceToken struct {
	ID        int    `json:"id,omitempty"`
	UserID    string `json:"user_id"`
	FCMToken  string `json:"fcm_token"`
	Platform  string `json:"platform"`
	IsActive  bool   `json:"is_active"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type RegisterTokenRequest struct {
	FCMToken string `json:"fcmToken" binding:"required"`
	Platform string `json:"platform"` // "android" | "ios", defaults to android
}

// SendPushRequest targets a single user's devices, or every active device
// when UserID is nil (service role only).
type SendPushRequest struct {
	Title  string            `json:"title" binding:"required"`
	Body   string            `json:"body" binding:"required"`
	Data   map[string]string `json:"data"`
	UserID *string           `json:"userId"`
}

type TopicPushRequest struct {
	Topic string            `json:"topic" binding:"required"`
	Title string            `json:"title" binding:"required"`
	Body  string            `json:"body" binding:"required"`
	Data  map[string]string `json:"data"`
}

// PushReport is the aggregate outcome of a fan-out; per-token detail is
// deliberately not exposed.
type PushReport struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}
