package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staynest/rental-platform/internal/api/metrics"
	"github.com/staynest/rental-platform/internal/core/domain"
	"github.com/staynest/rental-platform/internal/core/ports"
)

// maxImageFiles bounds the number of image files accepted per listing.
const maxImageFiles = 5

// PropertyHandler handles HTTP requests for listing operations.
type PropertyHandler struct {
	service ports.PropertyService
	storage ports.ImageStorage
}

func NewPropertyHandler(service ports.PropertyService, storage ports.ImageStorage) *PropertyHandler {
	return &PropertyHandler{service: service, storage: storage}
}

// Create handles POST /api/properties (multipart/form-data).
// Uploaded files go to object storage; only the resulting URIs are stored.
//
// @Summary      Create a property listing
// @Tags         properties
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  propertyEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	imageURIs, err := h.uploadImages(c, req.Images)
	if err != nil {
		return err
	}

	input, err := toCreateInput(req, imageURIs)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}

	metrics.PropertiesCreatedTotal.WithLabelValues(string(created.PropertyType)).Inc()

	return c.JSON(http.StatusCreated, propertyEnvelope{
		Success: true,
		Message: "property created successfully",
		Data:    toPropertyResponse(created),
	})
}

// Get handles GET /api/properties/:id. Public, no session required.
//
// @Summary      Get a listing by id
// @Tags         properties
// @Produce      json
// @Param        id  path  string  true  "Property id"
// @Success      200  {object}  propertyEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, propertyEnvelope{
		Success: true,
		Data:    toPropertyResponse(p),
	})
}

// List handles GET /api/properties with optional search filters.
//
// @Summary      Search listings
// @Tags         properties
// @Produce      json
// @Param        search     query  string  false  "Substring match on title, location or description"
// @Param        minPrice   query  number  false  "Inclusive lower price bound"
// @Param        maxPrice   query  number  false  "Inclusive upper price bound"
// @Param        amenities  query  string  false  "Required amenities, comma-separated or repeated"
// @Success      200  {object}  listPropertiesResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	filter, err := parseSearchFilter(c)
	if err != nil {
		return err
	}

	results, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	metrics.SearchesTotal.Inc()
	return c.JSON(http.StatusOK, toListResponse(results))
}

// Update handles PUT /api/properties/:id. The actor comes solely from the
// verified session token; a client-supplied owner id is never consulted.
//
// @Summary      Update a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Property id"
// @Success      200  {object}  propertyEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input, err := toUpdateInput(req)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, propertyEnvelope{
		Success: true,
		Message: "property updated successfully",
		Data:    toPropertyResponse(updated),
	})
}

// Delete handles DELETE /api/properties/:id.
//
// @Summary      Delete a listing
// @Tags         properties
// @Produce      json
// @Param        id  path  string  true  "Property id"
// @Success      200  {object}  deletedResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deletedResponse{
		Success: true,
		Message: "property deleted successfully",
	})
}

// uploadImages forwards multipart image files to object storage and returns
// their URIs merged with any pre-uploaded URIs from the form fields.
func (h *PropertyHandler) uploadImages(c echo.Context, existing []string) ([]string, error) {
	uris := append([]string(nil), existing...)

	form, err := c.MultipartForm()
	if err != nil {
		// Not multipart: URI-only submissions are allowed.
		return uris, nil
	}

	files := form.File["images"]
	if len(files) > maxImageFiles {
		return nil, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("at most %d image files are allowed", maxImageFiles))
	}
	if len(files) > 0 && h.storage == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "image storage is not available")
	}

	for i, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
		}

		key := fmt.Sprintf("properties/%d-%d-%s", time.Now().UnixNano(), i, fh.Filename)
		uri, err := h.storage.Upload(c.Request().Context(), key, fh.Header.Get("Content-Type"), src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}

		metrics.ImagesUploadedTotal.Inc()
		uris = append(uris, uri)
	}

	return uris, nil
}

// parseSearchFilter reads the query dimensions, rejecting malformed numbers.
func parseSearchFilter(c echo.Context) (domain.SearchFilter, error) {
	filter := domain.SearchFilter{
		Text:      c.QueryParam("search"),
		Amenities: splitAmenities(c.QueryParams()["amenities"]),
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.SearchFilter{}, fmt.Errorf("%w: minPrice must be a number", domain.ErrInvalidInput)
		}
		filter.MinPrice = &v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.SearchFilter{}, fmt.Errorf("%w: maxPrice must be a number", domain.ErrInvalidInput)
		}
		filter.MaxPrice = &v
	}

	return filter, nil
}
