package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/infocart/app/repositories"
	"github.com/shashiranjanraj/infocart/app/services"
	"github.com/shashiranjanraj/infocart/pkg/logger"
	"github.com/shashiranjanraj/infocart/pkg/response"
)

// multipartMemory is how much of a product upload is kept in memory while
// parsing; the rest spills to temp files.
const multipartMemory = 4 << 20

// ProductController serves the catalog endpoints.
type ProductController struct {
	service  *services.CatalogService
	maxBytes int64
}

// NewProductController builds a ProductController. maxBytes caps the whole
// multipart request body.
func NewProductController(service *services.CatalogService, maxBytes int64) *ProductController {
	return &ProductController{service: service, maxBytes: maxBytes}
}

// Store creates a product from a multipart form (name, price, description,
// optional image). Master role required, enforced by the route's gate.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	// Cap the request body before touching it; the slack covers the text
	// fields and multipart framing around a maximum-size image.
	r.Body = http.MaxBytesReader(w, r.Body, c.maxBytes+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		response.Fail(w, http.StatusBadRequest, "Error adding product", err)
		return
	}

	name := r.FormValue("name")
	description := r.FormValue("description")
	price, priceErr := strconv.ParseFloat(r.FormValue("price"), 64)
	if name == "" || description == "" || r.FormValue("price") == "" || priceErr != nil {
		response.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	input := services.CreateProductInput{
		Name:        name,
		Price:       price,
		Description: description,
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			response.Fail(w, http.StatusBadRequest, "Error adding product", readErr)
			return
		}
		input.Image = &services.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	product, err := c.service.Create(r.Context(), input)
	if errors.Is(err, services.ErrUnsupportedImage) {
		response.Error(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	if errors.Is(err, services.ErrImageTooLarge) {
		response.Error(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("add product failed", "error", err)
		response.Fail(w, http.StatusBadRequest, "Error adding product", err)
		return
	}

	response.JSON(w, http.StatusCreated, product)
}

// Index lists the catalog. Unauthenticated by design.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context())
	if err != nil {
		response.Fail(w, http.StatusInternalServerError, "Error fetching products", err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

// Destroy deletes a product and cascades the removal into every cart.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := c.service.Delete(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("delete product failed", "product_id", id, "error", err)
		response.Fail(w, http.StatusBadRequest, "Error deleting product", err)
		return
	}

	response.Message(w, http.StatusOK, "Product deleted successfully")
}
