package usecase

import (
	"net/http"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/domain/model"
)

// Requester はリクエストの主体。
// ログインユーザーかゲストセッションか、handlerで組み立てて毎回明示的に渡す。
// グローバルな暗黙状態は持たない。
type Requester struct {
	UserID     int64  // 0 なら未ログイン
	SessionKey string // ゲストセッションのキー（無ければ空）
}

func (r Requester) Authenticated() bool {
	return r.UserID > 0
}

// リクエスト主体からカートの持ち主を決める。
// ログイン中はユーザーカート、それ以外はセッションカート。
func cartOwnerOf(req Requester) (model.CartOwner, error) {
	if req.Authenticated() {
		return model.UserOwner(req.UserID), nil
	}
	if req.SessionKey == "" {
		return model.CartOwner{}, NewHTTPError(http.StatusBadRequest, "session required")
	}
	return model.SessionOwner(req.SessionKey), nil
}
