package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prodmanag/backend/internal/middleware"
	"github.com/prodmanag/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCreateProductRoundsPriceHalfUp(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"title": "Pen",
		"price": "1.005",
	})
	c.Set(middleware.CtxUserID, uint(1))
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Pen", resp.Title)
	require.Equal(t, 1.01, resp.Price)
	require.EqualValues(t, 1, resp.CreatedBy)
	require.Nil(t, resp.Image)

	// created record must come back through a keyword listing
	recList, cList := env.doJSONRequest(http.MethodGet, "/api/products?keyword=Pen", nil)
	require.NoError(t, env.P.ListProducts(cList))
	require.Equal(t, http.StatusOK, recList.Code)

	var list struct {
		Products []models.Product `json:"products"`
		Total    int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &list))
	require.EqualValues(t, 1, list.Total)
	require.Equal(t, 1.01, list.Products[0].Price)
}

func TestCreateProductAcceptsNumericPrice(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"title": "Notebook",
		"price": 19.999,
	})
	c.Set(middleware.CtxUserID, uint(1))
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 20.00, resp.Price)
}

func TestCreateProductNormalizesImageURL(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"title": "Lamp",
		"price": "25",
		"image": "https://cdn.example.com/lamp.png?size=large#zoom",
	})
	c.Set(middleware.CtxUserID, uint(1))
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Image)
	require.Equal(t, "https://cdn.example.com/lamp.png", *resp.Image)
}

func TestCreateProductRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)

	cases := []map[string]any{
		{"title": "Lamp", "price": "25", "image": "not-a-url"},
		{"title": "Lamp", "price": "25", "image": "ftp://example.com/lamp.png"},
		{"title": "ab", "price": "25"},
		{"title": "Lamp", "price": "-3"},
		{"price": "25"},
		{"title": "Lamp"},
	}

	for _, payload := range cases {
		_, c := env.doJSONRequest(http.MethodPost, "/api/products", payload)
		c.Set(middleware.CtxUserID, uint(1))
		err := env.P.CreateProduct(c)
		requireHTTPError(t, err, http.StatusBadRequest)
	}

	var count int64
	env.DB.Model(&models.Product{}).Count(&count)
	require.EqualValues(t, 0, count)
}

type listResponse struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int64            `json:"totalPages"`
}

func (env *testEnv) list(t *testing.T, target string) listResponse {
	t.Helper()
	rec, c := env.doJSONRequest(http.MethodGet, target, nil)
	require.NoError(t, env.P.ListProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestListProductsPagination(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 12; i++ {
		env.seedProduct(models.Product{
			Title: "Widget " + string(rune('A'+i)),
			Price: float64(i + 1),
		})
	}

	resp := env.list(t, "/api/products?page=1&limit=5")
	require.EqualValues(t, 12, resp.Total)
	require.EqualValues(t, 3, resp.TotalPages)
	require.Len(t, resp.Products, 5)

	resp = env.list(t, "/api/products?page=3&limit=5")
	require.Len(t, resp.Products, 2)

	// a page past the end is empty, not an error
	resp = env.list(t, "/api/products?page=4&limit=5")
	require.Empty(t, resp.Products)
	require.EqualValues(t, 12, resp.Total)

	// limit is clamped so a huge request cannot dump the table unpaged
	resp = env.list(t, "/api/products?limit=500")
	require.Len(t, resp.Products, 12)
	require.EqualValues(t, 1, resp.TotalPages)
}

func TestListProductsKeyword(t *testing.T) {
	env := newTestEnv(t)

	env.seedProduct(models.Product{Title: "Blue Pen", Price: 1})
	env.seedProduct(models.Product{Title: "Notebook", Description: "comes with a pen holder", Price: 5})
	env.seedProduct(models.Product{Title: "Stapler", Price: 7})

	resp := env.list(t, "/api/products?keyword=PEN")
	require.EqualValues(t, 2, resp.Total)

	resp = env.list(t, "/api/products?keyword=stapler")
	require.EqualValues(t, 1, resp.Total)

	resp = env.list(t, "/api/products?keyword=100%25")
	require.EqualValues(t, 0, resp.Total)
}

func TestListProductsSorting(t *testing.T) {
	env := newTestEnv(t)

	env.seedProduct(models.Product{Title: "Banana", Price: 3})
	env.seedProduct(models.Product{Title: "Apple", Price: 9})
	env.seedProduct(models.Product{Title: "Cherry", Price: 6})

	resp := env.list(t, "/api/products?sort=title")
	require.Equal(t, "Apple", resp.Products[0].Title)
	require.Equal(t, "Cherry", resp.Products[2].Title)

	resp = env.list(t, "/api/products?sort=-price")
	require.Equal(t, 9.0, resp.Products[0].Price)
	require.Equal(t, 3.0, resp.Products[2].Price)

	_, c := env.doJSONRequest(http.MethodGet, "/api/products?sort=secret_column", nil)
	err := env.P.ListProducts(c)
	requireHTTPError(t, err, http.StatusBadRequest)
}

func TestUpdateProductPartial(t *testing.T) {
	env := newTestEnv(t)

	prod := env.seedProduct(models.Product{
		Title:       "Old Lamp",
		Description: "a lamp",
		Price:       10,
		Image:       strPtr("https://cdn.example.com/lamp.png"),
	})

	rec, c := env.doJSONRequest(http.MethodPut, "/api/products/1", map[string]any{
		"title": "New Lamp",
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "New Lamp", resp.Title)
	require.Equal(t, "a lamp", resp.Description)
	require.Equal(t, 10.0, resp.Price)
	require.NotNil(t, resp.Image)
	require.Equal(t, *prod.Image, *resp.Image)
}

func TestUpdateProductClearsImage(t *testing.T) {
	env := newTestEnv(t)

	env.seedProduct(models.Product{
		Title: "Lamp",
		Price: 10,
		Image: strPtr("https://cdn.example.com/lamp.png"),
	})

	// empty string clears
	rec, c := env.doJSONRequest(http.MethodPut, "/api/products/1", map[string]any{"image": ""})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, 1).Error)
	require.Nil(t, stored.Image)

	// explicit null clears too
	require.NoError(t, env.DB.Model(&stored).Update("image", "https://cdn.example.com/lamp.png").Error)

	_, c = env.doJSONRequest(http.MethodPut, "/api/products/1", json.RawMessage(`{"image":null}`))
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.UpdateProduct(c))

	require.NoError(t, env.DB.First(&stored, 1).Error)
	require.Nil(t, stored.Image)
}

func TestUpdateProductRevalidates(t *testing.T) {
	env := newTestEnv(t)

	env.seedProduct(models.Product{Title: "Lamp", Price: 10})

	_, c := env.doJSONRequest(http.MethodPut, "/api/products/1", map[string]any{"image": "not-a-url"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	requireHTTPError(t, env.P.UpdateProduct(c), http.StatusBadRequest)

	_, c = env.doJSONRequest(http.MethodPut, "/api/products/1", map[string]any{"price": "-5"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	requireHTTPError(t, env.P.UpdateProduct(c), http.StatusBadRequest)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, 1).Error)
	require.Equal(t, 10.0, stored.Price)
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPut, "/api/products/999", map[string]any{"title": "Ghost"})
	c.SetParamNames("id")
	c.SetParamValues("999")
	requireHTTPError(t, env.P.UpdateProduct(c), http.StatusNotFound)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)

	env.seedProduct(models.Product{
		Title: "Lamp",
		Price: 10,
		Image: strPtr("https://cdn.example.com/lamp.png"),
	})

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.DeleteProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Msg            string `json:"msg"`
		DeletedProduct struct {
			ID    uint    `json:"id"`
			Title string  `json:"title"`
			Image *string `json:"image"`
		} `json:"deletedProduct"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Product deleted successfully", resp.Msg)
	require.EqualValues(t, 1, resp.DeletedProduct.ID)
	require.Equal(t, "Lamp", resp.DeletedProduct.Title)
	require.NotNil(t, resp.DeletedProduct.Image)

	var count int64
	env.DB.Model(&models.Product{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestDeleteProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	env.seedProduct(models.Product{Title: "Lamp", Price: 10})

	_, c := env.doJSONRequest(http.MethodDelete, "/api/products/999", nil)
	c.SetParamNames("id")
	c.SetParamValues("999")
	requireHTTPError(t, env.P.DeleteProduct(c), http.StatusNotFound)

	// the failed delete must not touch the store
	var count int64
	env.DB.Model(&models.Product{}).Count(&count)
	require.EqualValues(t, 1, count)
}
