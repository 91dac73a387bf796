package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/prodmanag/backend/internal/events"
	"github.com/prodmanag/backend/internal/logging"
	"github.com/prodmanag/backend/internal/middleware"
	"github.com/prodmanag/backend/internal/service"
	"github.com/prodmanag/backend/internal/transport"
	"github.com/prodmanag/backend/internal/util"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer events.Publisher
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	q := service.ListQuery{
		Page:    util.ParseIntDefault(c.QueryParam("page"), 1),
		Limit:   util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
		Sort:    c.QueryParam("sort"),
		Keyword: c.QueryParam("keyword"),
	}

	res, err := h.Svc.List(ctx, q)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("list_products_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products":   res.Products,
		"total":      res.Total,
		"page":       res.Page,
		"totalPages": res.TotalPages,
	})
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "validation failed", "error", err)
		return err
	}

	prod, err := h.Svc.Create(ctx, req, userID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_create_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("product_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
	}

	publish(c, h.Producer, events.TopicProductEvents, userID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"title":     prod.Title,
		"userID":    userID,
	})

	l.Info("create_product_success", "productID", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.Update(ctx, uint(id), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_update_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_update_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("product_update_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	userID, _ := middleware.UserID(c)
	publish(c, h.Producer, events.TopicProductEvents, userID, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"title":     prod.Title,
		"userID":    userID,
	})

	l.Info("update_product_success", "productID", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	prod, err := h.Svc.Delete(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_delete_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("product_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	userID, _ := middleware.UserID(c)
	publish(c, h.Producer, events.TopicProductEvents, userID, map[string]any{
		"type":      "product_deleted",
		"productID": prod.ID,
		"userID":    userID,
	})

	l.Info("delete_product_success", "productID", prod.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"msg": "Product deleted successfully",
		"deletedProduct": echo.Map{
			"id":    prod.ID,
			"title": prod.Title,
			"image": prod.Image,
		},
	})
}
