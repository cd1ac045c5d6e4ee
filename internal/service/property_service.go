package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"imoveisuniao_backend/internal/model"
	"imoveisuniao_backend/pkg/pagination"
	"imoveisuniao_backend/pkg/utils/image"
	"imoveisuniao_backend/pkg/utils/storage"
	"imoveisuniao_backend/pkg/utils/validation"
)

type PropertyService struct {
	db    *gorm.DB
	store MediaStorage
}

func NewPropertyService(db *gorm.DB, store MediaStorage) *PropertyService {
	return &PropertyService{db: db, store: store}
}

// PropertyPage is one window of the catalog plus the full row count.
type PropertyPage struct {
	Data  []model.Property `json:"data"`
	Count int64            `json:"count"`
}

// withRelations attaches type, subtype, features and ordered media to a query.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("PropertyType").
		Preload("PropertySubtype").
		Preload("Features", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_features.order_index ASC")
		}).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_media.order_index ASC")
		})
}

// Create stores a validated submission and its features, URL media and
// uploaded files in a single transaction. Exactly one media row ends up
// featured: the first one across URLs-then-files arrival order. Uploaded
// objects are removed again on rollback, best effort.
func (s *PropertyService) Create(ctx context.Context, input *validation.CreatePropertyInput, userID *uint, files []*multipart.FileHeader) (*model.Property, error) {
	if err := validation.ValidateImages(files); err != nil {
		return nil, validation.ValidationErrors{{Field: "images", Constraint: err.Error()}}
	}

	if err := s.checkTaxonomy(ctx, input.PropertyTypeID, input.PropertySubtypeID); err != nil {
		return nil, err
	}

	property := propertyFromInput(input, userID)

	var uploaded []string
	tx := s.db.WithContext(ctx).Begin()

	fail := func(err error) (*model.Property, error) {
		tx.Rollback()
		for _, url := range uploaded {
			if delErr := s.store.Delete(ctx, url); delErr != nil {
				log.Printf("Could not clean up uploaded object %s: %v", url, delErr)
			}
		}
		return nil, err
	}

	if err := tx.Create(property).Error; err != nil {
		return fail(err)
	}

	for i, name := range input.Features {
		value, _ := json.Marshal(name)
		feature := model.PropertyFeature{
			PropertyID: property.ID,
			Name:       name,
			Value:      datatypes.JSON(value),
			OrderIndex: i,
		}
		if err := tx.Create(&feature).Error; err != nil {
			return fail(err)
		}
	}

	// One counter spans both media sources so only the very first row,
	// URL or upload, is featured.
	mediaIndex := 0

	for _, url := range input.MediaURLs {
		media := model.PropertyMedia{
			PropertyID: property.ID,
			Type:       model.MediaTypeImage,
			URL:        url,
			IsFeatured: mediaIndex == 0,
			OrderIndex: mediaIndex,
		}
		if err := tx.Create(&media).Error; err != nil {
			return fail(err)
		}
		mediaIndex++
	}

	for _, file := range files {
		buf, contentType, err := image.ProcessImage(file)
		if err != nil {
			return fail(err)
		}

		key := storage.ObjectKey(property.Slug, file.Filename)
		url, err := s.store.Upload(ctx, key, buf, contentType)
		if err != nil {
			return fail(err)
		}
		uploaded = append(uploaded, url)

		media := model.PropertyMedia{
			PropertyID: property.ID,
			Type:       model.MediaTypeImage,
			URL:        url,
			Title:      file.Filename,
			IsFeatured: mediaIndex == 0,
			OrderIndex: mediaIndex,
		}
		if err := tx.Create(&media).Error; err != nil {
			return fail(err)
		}
		mediaIndex++
	}

	if err := tx.Commit().Error; err != nil {
		return fail(err)
	}

	return s.FindOne(ctx, property.ID)
}

// FindAll returns one page ordered by creation time descending plus the
// total row count. Page and limit are clamped, see pkg/pagination.
func (s *PropertyService) FindAll(ctx context.Context, page, limit int, onlyActive bool) (*PropertyPage, error) {
	params := pagination.Normalize(page, limit)

	counter := s.db.WithContext(ctx).Model(&model.Property{})
	if onlyActive {
		counter = counter.Where("status = ?", model.PropertyStatusActive)
	}

	var count int64
	if err := counter.Count(&count).Error; err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx)
	if onlyActive {
		query = query.Where("status = ?", model.PropertyStatusActive)
	}

	properties := []model.Property{}
	if err := withRelations(query).
		Order("created_at desc").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&properties).Error; err != nil {
		return nil, err
	}

	return &PropertyPage{Data: properties, Count: count}, nil
}

func (s *PropertyService) FindOne(ctx context.Context, id uint) (*model.Property, error) {
	var property model.Property
	if err := withRelations(s.db.WithContext(ctx)).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

// UpdatePropertyInput carries a partial update. Only non-nil fields are applied.
type UpdatePropertyInput struct {
	Title            *string  `json:"title"`
	InternalCode     *string  `json:"internal_code"`
	RipID            *string  `json:"rip_id"`
	Address          *string  `json:"address"`
	ReferencePoint   *string  `json:"reference_point"`
	GoogleMapsLink   *string  `json:"google_maps_link"`
	CEP              *string  `json:"cep"`
	Street           *string  `json:"street"`
	Number           *string  `json:"number"`
	Complement       *string  `json:"complement"`
	Neighborhood     *string  `json:"neighborhood"`
	City             *string  `json:"city"`
	State            *string  `json:"state"`
	Matricula        *string  `json:"matricula"`
	Processo         *string  `json:"processo"`
	Juizo            *string  `json:"juizo"`
	Cartorio         *string  `json:"cartorio"`
	HasGravames      *string  `json:"has_gravames"`
	GravamesDetails  *string  `json:"gravames_details"`
	BuiltArea        *float64 `json:"built_area"`
	LandArea         *float64 `json:"land_area"`
	Bedrooms         *int     `json:"bedrooms"`
	Bathrooms        *int     `json:"bathrooms"`
	GarageSpots      *int     `json:"garage_spots"`
	ConstructionYear *int     `json:"construction_year"`
	Description      *string  `json:"description"`
	InternalNotes    *string  `json:"internal_notes"`
	MarketPrice      *float64 `json:"market_price"`
	MinimumPrice     *float64 `json:"minimum_price"`
	Deadline         *string  `json:"deadline"`
	PaymentType      *string  `json:"payment_type"`
	MinDownPayment   *float64 `json:"min_down_payment"`
	MaxInstallments  *int     `json:"max_installments"`
	Status           *string  `json:"status"`
}

// Update applies a partial update to whitelisted scalar columns and returns
// the enriched row. Cross-field invariants are not re-checked.
func (s *PropertyService) Update(ctx context.Context, id uint, input *UpdatePropertyInput) (*model.Property, error) {
	var property model.Property
	if err := s.db.WithContext(ctx).First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates, verrs := input.columns()
	if verrs != nil {
		return nil, verrs
	}
	if len(updates) == 0 {
		return s.FindOne(ctx, id)
	}

	if err := s.db.WithContext(ctx).Model(&property).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.FindOne(ctx, id)
}

func (u *UpdatePropertyInput) columns() (map[string]interface{}, validation.ValidationErrors) {
	updates := map[string]interface{}{}
	var errs validation.ValidationErrors

	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setFloat := func(col string, v *float64) {
		if v != nil {
			updates[col] = *v
		}
	}
	setInt := func(col string, v *int) {
		if v != nil {
			updates[col] = *v
		}
	}

	setString("title", u.Title)
	setString("internal_code", u.InternalCode)
	setString("rip_id", u.RipID)
	setString("address", u.Address)
	setString("reference_point", u.ReferencePoint)
	setString("google_maps_link", u.GoogleMapsLink)
	setString("cep", u.CEP)
	setString("street", u.Street)
	setString("number", u.Number)
	setString("complement", u.Complement)
	setString("neighborhood", u.Neighborhood)
	setString("city", u.City)
	setString("state", u.State)
	setString("matricula", u.Matricula)
	setString("processo", u.Processo)
	setString("juizo", u.Juizo)
	setString("cartorio", u.Cartorio)
	setString("has_gravames", u.HasGravames)
	setString("gravames_details", u.GravamesDetails)
	setFloat("built_area", u.BuiltArea)
	setFloat("land_area", u.LandArea)
	setInt("bedrooms", u.Bedrooms)
	setInt("bathrooms", u.Bathrooms)
	setInt("garage_spots", u.GarageSpots)
	setInt("construction_year", u.ConstructionYear)
	setString("description", u.Description)
	setString("internal_notes", u.InternalNotes)
	setFloat("market_price", u.MarketPrice)
	setFloat("minimum_price", u.MinimumPrice)
	setFloat("min_down_payment", u.MinDownPayment)
	setInt("max_installments", u.MaxInstallments)

	if u.Deadline != nil {
		t, err := validation.ParseDeadline(*u.Deadline)
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "deadline", Value: *u.Deadline, Constraint: "must be a valid date"})
		} else {
			updates["deadline"] = t
		}
	}

	if u.PaymentType != nil {
		if !model.ValidPaymentType(model.PaymentType(*u.PaymentType)) {
			errs = append(errs, validation.FieldError{Field: "payment_type", Value: *u.PaymentType, Constraint: "must be one of: cash, installments"})
		} else {
			updates["payment_type"] = *u.PaymentType
		}
	}

	if u.Status != nil {
		if !model.ValidPropertyStatus(model.PropertyStatus(*u.Status)) {
			errs = append(errs, validation.FieldError{Field: "status", Value: *u.Status, Constraint: "must be one of: active, pending, sold, expired"})
		} else {
			updates["status"] = *u.Status
		}
	}

	if errs != nil {
		return nil, errs
	}
	return updates, nil
}

// Remove deletes the property together with its media and feature rows in
// one transaction, then removes bucket objects best effort.
func (s *PropertyService) Remove(ctx context.Context, id uint) error {
	var property model.Property
	if err := s.db.WithContext(ctx).Preload("Media").First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	tx := s.db.WithContext(ctx).Begin()

	if err := tx.Where("property_id = ?", property.ID).Delete(&model.PropertyMedia{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("property_id = ?", property.ID).Delete(&model.PropertyFeature{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&property).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	for _, media := range property.Media {
		if s.store.Owns(media.URL) {
			if err := s.store.Delete(ctx, media.URL); err != nil {
				log.Printf("Could not delete object %s: %v", media.URL, err)
			}
		}
	}

	return nil
}

// SaveMedia appends media rows for already-hosted URLs. The first new row is
// only featured when the property has no featured media yet.
func (s *PropertyService) SaveMedia(ctx context.Context, propertyID uint, urls []string) ([]model.PropertyMedia, error) {
	var property model.Property
	if err := s.db.WithContext(ctx).First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var featuredCount int64
	if err := s.db.WithContext(ctx).Model(&model.PropertyMedia{}).
		Where("property_id = ? AND is_featured = ?", propertyID, true).
		Count(&featuredCount).Error; err != nil {
		return nil, err
	}

	var existingCount int64
	if err := s.db.WithContext(ctx).Model(&model.PropertyMedia{}).
		Where("property_id = ?", propertyID).
		Count(&existingCount).Error; err != nil {
		return nil, err
	}

	created := make([]model.PropertyMedia, 0, len(urls))
	tx := s.db.WithContext(ctx).Begin()

	for i, url := range urls {
		media := model.PropertyMedia{
			PropertyID: propertyID,
			Type:       model.MediaTypeImage,
			URL:        url,
			IsFeatured: featuredCount == 0 && i == 0,
			OrderIndex: int(existingCount) + i,
		}
		if err := tx.Create(&media).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		created = append(created, media)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return created, nil
}

// DeleteMedia removes a single media row unconditionally.
func (s *PropertyService) DeleteMedia(ctx context.Context, mediaID uint) error {
	var media model.PropertyMedia
	if err := s.db.WithContext(ctx).First(&media, mediaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&media).Error; err != nil {
		return err
	}

	if s.store.Owns(media.URL) {
		if err := s.store.Delete(ctx, media.URL); err != nil {
			log.Printf("Could not delete object %s: %v", media.URL, err)
		}
	}

	return nil
}

// ExpireOverdue flips active properties whose deadline has passed to expired.
// Used by the daily cron job.
func (s *PropertyService) ExpireOverdue(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Property{}).
		Where("status = ? AND deadline < ?", model.PropertyStatusActive, time.Now()).
		Update("status", model.PropertyStatusExpired)
	return result.RowsAffected, result.Error
}

func (s *PropertyService) checkTaxonomy(ctx context.Context, typeID, subtypeID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.PropertyType{}).
		Where("id = ?", typeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return validation.ValidationErrors{{Field: "property_type_id", Value: typeID, Constraint: "unknown property type"}}
	}

	if err := s.db.WithContext(ctx).Model(&model.PropertySubtype{}).
		Where("id = ? AND property_type_id = ?", subtypeID, typeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return validation.ValidationErrors{{Field: "property_subtype_id", Value: subtypeID, Constraint: "unknown subtype for the given property type"}}
	}

	return nil
}

func propertyFromInput(input *validation.CreatePropertyInput, userID *uint) *model.Property {
	property := &model.Property{
		Title:             input.Title,
		InternalCode:      input.InternalCode,
		RipID:             input.RipID,
		Address:           input.Address,
		ReferencePoint:    input.ReferencePoint,
		GoogleMapsLink:    input.GoogleMapsLink,
		CEP:               input.CEP,
		Street:            input.Street,
		Number:            input.Number,
		Complement:        input.Complement,
		Neighborhood:      input.Neighborhood,
		City:              input.City,
		State:             input.State,
		Matricula:         input.Matricula,
		Processo:          input.Processo,
		Juizo:             input.Juizo,
		Cartorio:          input.Cartorio,
		HasGravames:       input.HasGravames,
		GravamesDetails:   input.GravamesDetails,
		PropertyTypeID:    input.PropertyTypeID,
		PropertySubtypeID: input.PropertySubtypeID,
		BuiltArea:         input.BuiltArea,
		LandArea:          input.LandArea,
		Bedrooms:          input.Bedrooms,
		Bathrooms:         input.Bathrooms,
		GarageSpots:       input.GarageSpots,
		ConstructionYear:  input.ConstructionYear,
		Description:       input.Description,
		InternalNotes:     input.InternalNotes,
		MarketPrice:       input.MarketPrice,
		MinimumPrice:      input.MinimumPrice,
		Deadline:          input.Deadline,
		PaymentType:       input.PaymentType,
		MinDownPayment:    input.MinDownPayment,
		MaxInstallments:   input.MaxInstallments,
		Status:            input.Status,
		UserID:            userID,
	}

	if property.MinDownPayment == nil {
		v := 25.0
		property.MinDownPayment = &v
	}
	if property.MaxInstallments == nil {
		v := 59
		property.MaxInstallments = &v
	}

	return property
}
