package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/narwhalmedia/storefront/internal/httpapi"
	"github.com/narwhalmedia/storefront/internal/product/domain"
	"github.com/narwhalmedia/storefront/internal/product/service"
	"github.com/narwhalmedia/storefront/pkg/errors"
)

const photoField = "photo"

// HTTPHandler serves the product routes
type HTTPHandler struct {
	service       *service.ProductService
	maxUploadSize int64
}

// NewHTTPHandler creates a new product HTTP handler. Multipart bodies larger
// than maxUploadSize bytes are rejected.
func NewHTTPHandler(service *service.ProductService, maxUploadSize int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxUploadSize: maxUploadSize}
}

// Prefix implements httpapi.Module
func (h *HTTPHandler) Prefix() string { return "/product" }

// Register implements httpapi.Module
func (h *HTTPHandler) Register(r chi.Router, admin func(http.Handler) http.Handler) {
	r.With(admin).Post("/new", httpapi.Handle(h.createProduct))
	r.Get("/latest", httpapi.Handle(h.latestProducts))
	r.Get("/all", httpapi.Handle(h.searchProducts))
	r.Get("/categories", httpapi.Handle(h.categories))
	r.With(admin).Get("/admin-products", httpapi.Handle(h.adminProducts))
	r.Get("/{id}", httpapi.Handle(h.getProduct))
	r.With(admin).Put("/{id}", httpapi.Handle(h.updateProduct))
	r.With(admin).Delete("/{id}", httpapi.Handle(h.deleteProduct))
}

func (h *HTTPHandler) createProduct(w http.ResponseWriter, r *http.Request) error {
	photo, err := h.parseForm(w, r)
	if err != nil {
		return err
	}
	if photo != nil {
		defer photo.close()
	}

	input := service.CreateInput{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
	}
	if input.Price, err = formFloat(r, "price"); err != nil {
		return err
	}
	if input.Stock, err = formInt(r, "stock"); err != nil {
		return err
	}

	if _, err := h.service.CreateProduct(r.Context(), input, photo.toService()); err != nil {
		return err
	}
	return httpapi.Message(w, http.StatusCreated, "Product Created Successfully")
}

func (h *HTTPHandler) updateProduct(w http.ResponseWriter, r *http.Request) error {
	photo, err := h.parseForm(w, r)
	if err != nil {
		return err
	}
	if photo != nil {
		defer photo.close()
	}

	var input service.UpdateInput
	if v := r.FormValue("name"); v != "" {
		input.Name = &v
	}
	if v := r.FormValue("category"); v != "" {
		input.Category = &v
	}
	if r.FormValue("price") != "" {
		price, err := formFloat(r, "price")
		if err != nil {
			return err
		}
		input.Price = &price
	}
	if r.FormValue("stock") != "" {
		stock, err := formInt(r, "stock")
		if err != nil {
			return err
		}
		input.Stock = &stock
	}

	if _, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), input, photo.toService()); err != nil {
		return err
	}
	return httpapi.Message(w, http.StatusOK, "Product Updated Successfully")
}

func (h *HTTPHandler) deleteProduct(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	return httpapi.Message(w, http.StatusOK, "Product Deleted Successfully")
}

func (h *HTTPHandler) latestProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.service.LatestProducts(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"products": products})
}

func (h *HTTPHandler) categories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"categories": categories})
}

func (h *HTTPHandler) adminProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.service.AdminProducts(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"products": products})
}

func (h *HTTPHandler) getProduct(w http.ResponseWriter, r *http.Request) error {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"product": product})
}

func (h *HTTPHandler) searchProducts(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	filter := domain.SearchFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     domain.SortOrder(strings.ToLower(q.Get("sort"))),
	}
	if v := q.Get("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.BadRequest("price must be a number")
		}
		filter.MaxPrice = price
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return errors.BadRequest("page must be a number")
		}
		filter.Page = page
	}

	result, err := h.service.Search(r.Context(), filter)
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{
		"products":  result.Products,
		"totalPage": result.TotalPage,
	})
}

type upload struct {
	photo  service.Photo
	closer func() error
}

func (u *upload) toService() *service.Photo {
	if u == nil {
		return nil
	}
	return &u.photo
}

func (u *upload) close() {
	_ = u.closer()
}

// parseForm reads a multipart body. The returned upload is nil when no photo
// was sent.
func (h *HTTPHandler) parseForm(w http.ResponseWriter, r *http.Request) (*upload, error) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.BadRequest(fmt.Sprintf("Photo must be smaller than %d bytes", tooLarge.Limit))
		}
		return nil, errors.Wrap(errors.ErrorTypeBadRequest, "Invalid multipart form", err)
	}

	file, header, err := r.FormFile(photoField)
	if stderrors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeBadRequest, "Invalid photo", err)
	}

	return &upload{
		photo: service.Photo{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		},
		closer: file.Close,
	}, nil
}

func formFloat(r *http.Request, key string) (float64, error) {
	v := r.FormValue(key)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.BadRequest(fmt.Sprintf("%s must be a number", key))
	}
	return f, nil
}

func formInt(r *http.Request, key string) (int, error) {
	v := r.FormValue(key)
	if v == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.BadRequest(fmt.Sprintf("%s must be a whole number", key))
	}
	return i, nil
}
