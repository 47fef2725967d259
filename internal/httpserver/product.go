package httpserver

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/shopnext/backend/internal/search"
	"github.com/shopnext/backend/internal/service"
	"github.com/shopnext/backend/internal/transport"
	"github.com/shopnext/backend/internal/util"
)

type ProductHandler struct {
	Svc *service.CatalogService
}

func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.Svc.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := h.Svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Dashboard(c echo.Context) error {
	products, err := h.Svc.List(c.Request().Context(), "")
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Svc.Create(c.Request().Context(), req); err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, "Product Added")
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Svc.Update(c.Request().Context(), uint(id), req); err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, "Product Updated")
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Delete(c.Request().Context(), uint(id)); err != nil {
		return httpError(err)
	}
	return c.String(http.StatusOK, "Product Deleted")
}

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, products, err := search.Query(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
