package model

import "time"

// カートの持ち主はユーザーIDかセッションキーのどちらか一方。
// 両方を同時に持つことはない。
type Cart struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//ログインユーザーのカート（1ユーザー1カート）
	UserID *int64 `gorm:"uniqueIndex" json:"user_id,omitempty"`

	//ゲストカートのキー（1キー1カート）
	SessionKey *string `gorm:"type:varchar(64);uniqueIndex" json:"session_key,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// CartOwner はカートの持ち主を表すタグ付きの値。
// User(id) か Session(key) のどちらかだけを持つ。
type CartOwner struct {
	userID     int64
	sessionKey string
}

// ログインユーザーの持ち主
func UserOwner(userID int64) CartOwner {
	return CartOwner{userID: userID}
}

// ゲストセッションの持ち主
func SessionOwner(key string) CartOwner {
	return CartOwner{sessionKey: key}
}

func (o CartOwner) IsUser() bool {
	return o.userID > 0
}

func (o CartOwner) UserID() int64 {
	return o.userID
}

func (o CartOwner) SessionKey() string {
	return o.sessionKey
}
