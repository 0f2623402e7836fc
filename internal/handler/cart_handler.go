package handler

import (
	"net/http"
	"strconv"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/config"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/middleware"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	cartUC     *usecase.CartUsecase
	checkoutUC *usecase.CheckoutUsecase
}

// DI
func NewCartHandler(cartUC *usecase.CartUsecase, checkoutUC *usecase.CheckoutUsecase) *CartHandler {
	return &CartHandler{cartUC: cartUC, checkoutUC: checkoutUC}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type CheckoutRequest struct {
	GuestEmail      string `json:"guest_email"`
	GuestName       string `json:"guest_name"`
	ShippingAddress string `json:"shipping_address"`
	Phone           string `json:"phone"`
	Notes           string `json:"notes"`
}

// /cart配下を登録。ゲストも使えるのでJWTは任意、セッションCookieは常に配る。
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.GuestSession())
	g.Use(middleware.OptionalAuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("/add", h.addItem)
	g.PUT("/item/:product_id", h.updateItem)
	g.DELETE("/remove/:product_id", h.removeItem)
	g.DELETE("/clear", h.clear)
	g.POST("/checkout", h.checkout)

	//マージはログイン必須
	m := e.Group("/cart")
	m.Use(middleware.GuestSession())
	m.Use(middleware.AuthJWT(cfg))
	m.POST("/merge", h.merge)
}

func (h *CartHandler) getCart(c echo.Context) error {
	req := requesterFromContext(c)

	out, err := h.cartUC.GetCart(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	req := requesterFromContext(c)

	var body AddCartRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.cartUC.AddItem(c.Request().Context(), req, usecase.AddCartInput{
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	req := requesterFromContext(c)

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	var body UpdateCartItemRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.cartUC.UpdateItem(c.Request().Context(), req, productID, body.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	req := requesterFromContext(c)

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	removed, err := h.cartUC.RemoveItem(c.Request().Context(), req, productID)
	if err != nil {
		return writeError(c, err)
	}
	if !removed {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "item not found in cart"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"removed": true})
}

func (h *CartHandler) clear(c echo.Context) error {
	req := requesterFromContext(c)

	out, err := h.cartUC.Clear(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// カートの中身をストアごとの注文に変換する。
func (h *CartHandler) checkout(c echo.Context) error {
	req := requesterFromContext(c)

	var body CheckoutRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.checkoutUC.Checkout(c.Request().Context(), req, usecase.CheckoutInput{
		GuestEmail:      body.GuestEmail,
		GuestName:       body.GuestName,
		ShippingAddress: body.ShippingAddress,
		Phone:           body.Phone,
		Notes:           body.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// ゲストカートをユーザーカートへ取り込む。
func (h *CartHandler) merge(c echo.Context) error {
	req := requesterFromContext(c)

	merged, err := h.cartUC.TransferOnLogin(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"merged": merged})
}
