package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"imoveisuniao_backend/internal/model"
	"imoveisuniao_backend/internal/service"
)

type nullStore struct{}

func (nullStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	return "https://cdn.test/" + key, nil
}
func (nullStore) Delete(ctx context.Context, url string) error { return nil }
func (nullStore) Owns(url string) bool                         { return strings.HasPrefix(url, "https://cdn.test/") }

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.PropertyType{},
		&model.PropertySubtype{},
		&model.Property{},
		&model.PropertyFeature{},
		&model.PropertyMedia{},
		&model.Lead{},
	))

	propertyType := model.PropertyType{Name: "Residencial"}
	require.NoError(t, db.Create(&propertyType).Error)
	require.NoError(t, db.Create(&model.PropertySubtype{Name: "Casa", PropertyTypeID: propertyType.ID}).Error)

	properties := NewPropertyController(service.NewPropertyService(db, nullStore{}))
	leads := NewLeadController(service.NewLeadService(db))

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/p", properties.FindPublic)
	api.Get("/properties/:id<int>", properties.FindOne)
	api.Post("/properties/:id<int>/leads", leads.Create)
	api.Post("/properties", properties.Create)

	return app, db
}

func propertyForm(t *testing.T, overrides map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	fields := map[string]string{
		"title":               "Casa em Copacabana",
		"address":             "Av. Atlântica, 1500",
		"description":         "Casa com vista para o mar",
		"property_type_id":    "1",
		"property_subtype_id": "1",
		"market_price":        "850000",
		"minimum_price":       "600000",
		"deadline":            "2027-12-31",
		"payment_type":        "cash",
	}
	for k, v := range overrides {
		fields[k] = v
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestCreatePropertyEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	body, contentType := propertyForm(t, nil)
	req, _ := http.NewRequest(http.MethodPost, "/api/properties", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created model.Property
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Casa em Copacabana", created.Title)
	assert.Contains(t, created.Slug, "casa-em-copacabana")
	assert.Equal(t, model.PropertyStatusActive, created.Status)
}

func TestCreatePropertyEndpointValidationBody(t *testing.T) {
	app, _ := newTestApp(t)

	body, contentType := propertyForm(t, map[string]string{"bedrooms": "101"})
	req, _ := http.NewRequest(http.MethodPost, "/api/properties", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Message string `json:"message"`
		Errors  []struct {
			Field      string `json:"field"`
			Constraint string `json:"constraint"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Validation failed", payload.Message)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "bedrooms", payload.Errors[0].Field)
}

func TestPublicCatalogHidesInactive(t *testing.T) {
	app, db := newTestApp(t)

	for _, status := range []string{"active", "sold"} {
		body, contentType := propertyForm(t, map[string]string{
			"title":  "Casa " + status,
			"status": status,
		})
		req, _ := http.NewRequest(http.MethodPost, "/api/properties", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	var total int64
	require.NoError(t, db.Model(&model.Property{}).Count(&total).Error)
	require.Equal(t, int64(2), total)

	req, _ := http.NewRequest(http.MethodGet, "/api/p", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page struct {
		Data  []model.Property `json:"data"`
		Count int64            `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Casa active", page.Data[0].Title)
	assert.Equal(t, int64(1), page.Count)
}

func TestFindOneEndpointNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/properties/999", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLeadEndpoint(t *testing.T) {
	app, db := newTestApp(t)

	body, contentType := propertyForm(t, nil)
	req, _ := http.NewRequest(http.MethodPost, "/api/properties", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created model.Property
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	leadBody, _ := json.Marshal(map[string]string{
		"name":    "Maria Silva",
		"email":   "maria@example.com",
		"phone":   "+55 21 98888-0000",
		"message": "Quero visitar",
	})
	req, _ = http.NewRequest(http.MethodPost, fmt.Sprintf("/api/properties/%d/leads", created.ID), bytes.NewReader(leadBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&model.Lead{}).Where("property_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// missing required contact fields
	req, _ = http.NewRequest(http.MethodPost, fmt.Sprintf("/api/properties/%d/leads", created.ID), strings.NewReader(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
