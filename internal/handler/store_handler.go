package handler

import (
	"net/http"
	"strconv"

	"github.com/TuanDoan14112003/storebuilder-backend/internal/config"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/middleware"
	"github.com/TuanDoan14112003/storebuilder-backend/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /stores のHTTP
type StoreHandler struct {
	storeUC   *usecase.StoreUsecase
	productUC *usecase.ProductUsecase
	orderUC   *usecase.OrderUsecase
}

// DI
func NewStoreHandler(storeUC *usecase.StoreUsecase, productUC *usecase.ProductUsecase, orderUC *usecase.OrderUsecase) *StoreHandler {
	return &StoreHandler{storeUC: storeUC, productUC: productUC, orderUC: orderUC}
}

type StoreRequest struct {
	Name string `json:"name"`
}

func (h *StoreHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/stores", h.list)
	e.GET("/stores/:id", h.detail)
	e.GET("/stores/:id/products", h.listProducts)
	e.GET("/users/:id/stores", h.listUserStores)

	g := e.Group("/stores")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/orders", h.listOrders)
}

func (h *StoreHandler) list(c echo.Context) error {
	out, err := h.storeUC.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.storeUC.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) listProducts(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.productUC.ListByStore(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) listUserStores(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.storeUC.ListByUser(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) create(c echo.Context) error {
	req := requesterFromContext(c)

	var body StoreRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.storeUC.Create(c.Request().Context(), req, usecase.StoreInput{Name: body.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *StoreHandler) update(c echo.Context) error {
	req := requesterFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var body StoreRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.storeUC.Update(c.Request().Context(), req, id, usecase.StoreInput{Name: body.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) delete(c echo.Context) error {
	req := requesterFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.storeUC.Delete(c.Request().Context(), req, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ストアに入った注文一覧（オーナーだけ）。?status= で絞り込み。
func (h *StoreHandler) listOrders(c echo.Context) error {
	req := requesterFromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.ListStoreOrders(c.Request().Context(), req, id, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
