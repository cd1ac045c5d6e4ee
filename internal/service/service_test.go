package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"imoveisuniao_backend/internal/model"
)

const fakeCDN = "https://cdn.test"

// fakeStore is an in-memory MediaStorage.
type fakeStore struct {
	uploaded   []string
	deleted    []string
	failUpload bool
}

func (f *fakeStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.failUpload {
		return "", errors.New("upload failed")
	}
	url := fakeCDN + "/" + key
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeStore) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeStore) Owns(url string) bool {
	return strings.HasPrefix(url, fakeCDN+"/")
}

func newTestDB(t *testing.T) *gorm.DB {
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

	return db
}

// seedTaxonomy creates one type with one subtype and returns their IDs.
func seedTaxonomy(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()

	propertyType := model.PropertyType{Name: "Residencial"}
	require.NoError(t, db.Create(&propertyType).Error)

	subtype := model.PropertySubtype{Name: "Casa", PropertyTypeID: propertyType.ID}
	require.NoError(t, db.Create(&subtype).Error)

	return propertyType.ID, subtype.ID
}

// uploadFiles builds real multipart file headers carrying a tiny JPEG each.
func uploadFiles(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, name))
		header.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		require.NoError(t, jpeg.Encode(part, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil))
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["images"]
}
