package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staynest/rental-platform/internal/api/handler"
	"github.com/staynest/rental-platform/internal/api/middleware"
	"github.com/staynest/rental-platform/internal/core/domain"
	"github.com/staynest/rental-platform/internal/core/ports"
)

type stubPropertyService struct {
	createFn func(ctx context.Context, actor *domain.User, input ports.CreatePropertyInput) (*domain.Property, error)
	getFn    func(ctx context.Context, id string) (*domain.Property, error)
	updateFn func(ctx context.Context, actor *domain.User, id string, input ports.UpdatePropertyInput) (*domain.Property, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
	searchFn func(ctx context.Context, filter domain.SearchFilter) ([]*domain.Property, error)
}

func (s *stubPropertyService) Create(ctx context.Context, actor *domain.User, input ports.CreatePropertyInput) (*domain.Property, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubPropertyService) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	return s.getFn(ctx, id)
}

func (s *stubPropertyService) Update(ctx context.Context, actor *domain.User, id string, input ports.UpdatePropertyInput) (*domain.Property, error) {
	return s.updateFn(ctx, actor, id, input)
}

func (s *stubPropertyService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubPropertyService) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Property, error) {
	return s.searchFn(ctx, filter)
}

type uploadedObject struct {
	key         string
	contentType string
	size        int
}

type stubImageStorage struct {
	uploads []uploadedObject
	deleted []string
}

func (s *stubImageStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	n, _ := io.Copy(io.Discard, body)
	s.uploads = append(s.uploads, uploadedObject{key: key, contentType: contentType, size: int(n)})
	return "https://cdn.example.com/" + key, nil
}

func (s *stubImageStorage) Delete(ctx context.Context, uri string) error {
	s.deleted = append(s.deleted, uri)
	return nil
}

func owner() *domain.User {
	return &domain.User{ID: "owner1", Name: "olivia", Role: domain.RoleOwner}
}

func TestPropertyHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	var got ports.CreatePropertyInput
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePropertyInput) (*domain.Property, error) {
			if actor.ID != "owner1" {
				t.Fatalf("actor must come from the session, got %q", actor.ID)
			}
			got = input
			return &domain.Property{ID: "p1", Title: input.Title, Images: input.Images, PropertyType: domain.PropertyType(input.PropertyType), OwnerID: actor.ID}, nil
		},
	}
	h := handler.NewPropertyHandler(stub, nil)

	body := strings.NewReader(`{
		"title":"Sea view flat","price":1200,"location":"Lisbon",
		"description":"Bright two-bedroom","images":["https://img/1.jpg"],
		"amenities":["WiFi"],"property_type":"Apartment","bedrooms":2
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetActor(c, owner())

	runHandler(e, c, h.Create)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Title != "Sea view flat" || got.PropertyType != "Apartment" || len(got.Images) != 1 {
		t.Fatalf("unexpected input forwarded: %+v", got)
	}
}

func TestPropertyHandler_Create_NoSession(t *testing.T) {
	e := newTestEcho()
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePropertyInput) (*domain.Property, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewPropertyHandler(stub, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	runHandler(e, c, h.Create)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPropertyHandler_Create_InvalidType(t *testing.T) {
	e := newTestEcho()
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePropertyInput) (*domain.Property, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewPropertyHandler(stub, nil)

	body := strings.NewReader(`{
		"title":"x","price":10,"location":"y","description":"z",
		"images":["https://img/1.jpg"],"property_type":"Castle"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetActor(c, owner())

	runHandler(e, c, h.Create)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func multipartListing(t *testing.T, fileNames []string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":         "Garden PG",
		"price":         "450",
		"location":      "Pune",
		"description":   "Shared accommodation near campus",
		"property_type": "PG",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, name := range fileNames {
		fw, err := w.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("fake-image-bytes")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestPropertyHandler_Create_UploadsMultipartImages(t *testing.T) {
	e := newTestEcho()
	store := &stubImageStorage{}
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePropertyInput) (*domain.Property, error) {
			if len(input.Images) != 2 {
				t.Fatalf("expected 2 uploaded image URIs, got %v", input.Images)
			}
			for _, uri := range input.Images {
				if !strings.HasPrefix(uri, "https://cdn.example.com/properties/") {
					t.Fatalf("unexpected image uri %q", uri)
				}
			}
			return &domain.Property{ID: "p1", Images: input.Images, PropertyType: "PG", OwnerID: actor.ID}, nil
		},
	}
	h := handler.NewPropertyHandler(stub, store)

	buf, contentType := multipartListing(t, []string{"front.jpg", "room.jpg"})
	req := httptest.NewRequest(http.MethodPost, "/api/properties", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetActor(c, owner())

	runHandler(e, c, h.Create)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(store.uploads))
	}
	if store.uploads[0].size == 0 {
		t.Fatalf("upload body was not forwarded")
	}
}

func TestPropertyHandler_Create_TooManyImageFiles(t *testing.T) {
	e := newTestEcho()
	store := &stubImageStorage{}
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePropertyInput) (*domain.Property, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewPropertyHandler(stub, store)

	buf, contentType := multipartListing(t, []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg"})
	req := httptest.NewRequest(http.MethodPost, "/api/properties", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetActor(c, owner())

	runHandler(e, c, h.Create)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(store.uploads) != 0 {
		t.Fatalf("nothing must be uploaded when the file count is rejected")
	}
}

func TestPropertyHandler_Create_FilesWithoutStorage(t *testing.T) {
	e := newTestEcho()
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePropertyInput) (*domain.Property, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewPropertyHandler(stub, nil)

	buf, contentType := multipartListing(t, []string{"front.jpg"})
	req := httptest.NewRequest(http.MethodPost, "/api/properties", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetActor(c, owner())

	runHandler(e, c, h.Create)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestPropertyHandler_List_ParsesFilters(t *testing.T) {
	e := newTestEcho()
	var got domain.SearchFilter
	stub := &stubPropertyService{
		searchFn: func(ctx context.Context, filter domain.SearchFilter) ([]*domain.Property, error) {
			got = filter
			return []*domain.Property{{ID: "p1"}, {ID: "p2"}}, nil
		},
	}
	h := handler.NewPropertyHandler(stub, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/properties?search=lisbon&minPrice=500&maxPrice=1500&amenities=WiFi,Parking&amenities=Pool", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	runHandler(e, c, h.List)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Text != "lisbon" {
		t.Fatalf("text filter not forwarded: %q", got.Text)
	}
	if got.MinPrice == nil || *got.MinPrice != 500 || got.MaxPrice == nil || *got.MaxPrice != 1500 {
		t.Fatalf("price bounds not forwarded: %+v", got)
	}
	want := []string{"WiFi", "Parking", "Pool"}
	if len(got.Amenities) != len(want) {
		t.Fatalf("amenities not merged: %v", got.Amenities)
	}
	for i, a := range want {
		if got.Amenities[i] != a {
			t.Fatalf("amenities not merged: %v", got.Amenities)
		}
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(2) {
		t.Fatalf("expected total 2, got %v", resp["total"])
	}
}

func TestPropertyHandler_List_MalformedPrice(t *testing.T) {
	e := newTestEcho()
	stub := &stubPropertyService{
		searchFn: func(ctx context.Context, filter domain.SearchFilter) ([]*domain.Property, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := handler.NewPropertyHandler(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/properties?minPrice=cheap", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	runHandler(e, c, h.List)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPropertyHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubPropertyService{
		getFn: func(ctx context.Context, id string) (*domain.Property, error) {
			return nil, domain.ErrPropertyNotFound
		},
	}
	h := handler.NewPropertyHandler(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/properties/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	runHandler(e, c, h.Get)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPropertyHandler_Update_ForwardsPatch(t *testing.T) {
	e := newTestEcho()
	stub := &stubPropertyService{
		updateFn: func(ctx context.Context, actor *domain.User, id string, input ports.UpdatePropertyInput) (*domain.Property, error) {
			if id != "p1" || actor.ID != "owner1" {
				t.Fatalf("unexpected target: id=%s actor=%s", id, actor.ID)
			}
			if input.Price == nil || *input.Price != 999 {
				t.Fatalf("price patch not forwarded: %+v", input)
			}
			if input.Title != nil {
				t.Fatalf("absent fields must stay nil")
			}
			return &domain.Property{ID: id, Price: *input.Price, OwnerID: actor.ID}, nil
		},
	}
	h := handler.NewPropertyHandler(stub, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/properties/p1", strings.NewReader(`{"price":999}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	middleware.SetActor(c, owner())

	runHandler(e, c, h.Update)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPropertyHandler_Delete_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubPropertyService{
		deleteFn: func(ctx context.Context, actor *domain.User, id string) error {
			return domain.ErrForbidden
		},
	}
	h := handler.NewPropertyHandler(stub, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/properties/p1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	middleware.SetActor(c, &domain.User{ID: "intruder", Role: domain.RoleOwner})

	runHandler(e, c, h.Delete)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
