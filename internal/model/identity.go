package model

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// Identity はリクエストの利用者です。未ログインなら SignedIn は false です。
type Identity struct {
	UserID   string
	SignedIn bool
}
