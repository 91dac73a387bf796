package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prodmanag/backend/internal/middleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.Search)
	}

	protected := products.Group("", middleware.RequireAuth(d.JWTSecret))
	protected.POST("", d.ProductHandler.CreateProduct)
	protected.PUT("/:id", d.ProductHandler.UpdateProduct)
	protected.DELETE("/:id", d.ProductHandler.DeleteProduct)
}
