package handler

import (
	"net/http"
	"strconv"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/config"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/middleware"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders のHTTP
type OrderHandler struct {
	orderUC    *usecase.OrderUsecase
	checkoutUC *usecase.CheckoutUsecase
}

// DI
func NewOrderHandler(orderUC *usecase.OrderUsecase, checkoutUC *usecase.CheckoutUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, checkoutUC: checkoutUC}
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	GuestEmail      string             `json:"guest_email"`
	GuestName       string             `json:"guest_name"`
	ShippingAddress string             `json:"shipping_address"`
	Phone           string             `json:"phone"`
	Notes           string             `json:"notes"`
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type DeclineRequest struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//直接注文はゲストも使える
	e.POST("/orders/create", h.create, middleware.OptionalAuthJWT(cfg))

	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("/user", h.listUserOrders)
	g.GET("/:id", h.detail)
	g.PUT("/:id/status", h.updateStatus)
	g.POST("/:id/approve", h.approve)
	g.POST("/:id/decline", h.decline)
}

// カートを通さない直接注文。ストアごとに分割されるのはcheckoutと同じ。
func (h *OrderHandler) create(c echo.Context) error {
	req := requesterFromContext(c)

	var body CreateOrderRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.OrderItemInput, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, usecase.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	out, err := h.checkoutUC.CreateOrder(c.Request().Context(), req, usecase.CreateOrderInput{
		Items:           items,
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

// 自分の注文一覧。?status= で絞り込み。
func (h *OrderHandler) listUserOrders(c echo.Context) error {
	req := requesterFromContext(c)

	out, err := h.orderUC.ListUserOrders(c.Request().Context(), req, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	req := requesterFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.GetOrder(c.Request().Context(), req, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	req := requesterFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var body UpdateStatusRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.UpdateStatus(c.Request().Context(), req, id, body.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) approve(c echo.Context) error {
	req := requesterFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.Approve(c.Request().Context(), req, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) decline(c echo.Context) error {
	req := requesterFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var body DeclineRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.Decline(c.Request().Context(), req, id, body.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
