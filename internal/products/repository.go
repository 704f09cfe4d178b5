package products

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/poscatalog/catalog-backend/pkg/db/models"
	"github.com/poscatalog/catalog-backend/pkg/enums"
	"github.com/poscatalog/catalog-backend/pkg/pagination"
)

// LoadOptions names the relations a query should eager-fetch. The serializer
// never triggers follow-up fetches, so anything not requested here stays
// empty in the response.
type LoadOptions struct {
	Quantities  bool
	Attachments bool
}

// AllRelations requests every relation the product payload can carry.
func AllRelations() LoadOptions {
	return LoadOptions{Quantities: true, Attachments: true}
}

// Filter narrows product list queries.
type Filter struct {
	Search         string
	BrandID        *int64
	CategoryID     *int64
	IsActive       *bool
	IncludeDeleted bool
	Page           int
	Limit          int
}

// ReferenceIDs carries the foreign references a product row must resolve.
type ReferenceIDs struct {
	BrandID    int64
	CategoryID int64
	UnitID     int64
	TaxID      int64
}

// Repository wires together product persistence against GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns products matching the filter in creation order, along with the
// unpaginated total. Soft-deleted rows are excluded unless IncludeDeleted.
func (r *Repository) List(ctx context.Context, filter Filter, opts LoadOptions) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
	}
	if filter.BrandID != nil {
		query = query.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if opts.Quantities {
		query = query.Preload("Quantities")
	}
	query = query.Order("created_at ASC, id ASC")
	if filter.Limit > 0 {
		pager := pagination.Params{Page: filter.Page, Limit: filter.Limit}
		query = query.Limit(pagination.NormalizeLimit(filter.Limit)).Offset(pager.Offset())
	}

	var items []models.Product
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	if opts.Attachments {
		if err := r.attachOwnedFiles(ctx, items); err != nil {
			return nil, 0, err
		}
	}

	return items, total, nil
}

// Get loads one live product by id with the requested relations. Returns
// gorm.ErrRecordNotFound when the row is absent or soft-deleted.
func (r *Repository) Get(ctx context.Context, id int64, opts LoadOptions) (*models.Product, error) {
	query := r.db.WithContext(ctx)
	if opts.Quantities {
		query = query.Preload("Quantities")
	}

	var product models.Product
	if err := query.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if opts.Attachments {
		items := []models.Product{product}
		if err := r.attachOwnedFiles(ctx, items); err != nil {
			return nil, err
		}
		product = items[0]
	}

	return &product, nil
}

// Create inserts the product row. Owned rows are written separately so the
// insert order stays explicit.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

// Save persists all fields of an existing product row and refreshes updated_at.
func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

// SoftDelete marks the row deleted. A second call on the same row reports
// gorm.ErrRecordNotFound because the default scope no longer sees it.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceQuantities swaps all per-warehouse stock rows for the product.
func (r *Repository) ReplaceQuantities(ctx context.Context, productID int64, rows []models.ProductQuantity) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductQuantity{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ProductID = productID
	}
	return tx.Create(&rows).Error
}

// ReplaceAttachments swaps all file references owned by the product.
func (r *Repository) ReplaceAttachments(ctx context.Context, productID int64, rows []models.Attachment) error {
	tx := r.db.WithContext(ctx)
	if err := tx.
		Where("owner_kind = ? AND owner_id = ?", enums.OwnerKindProduct, productID).
		Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].OwnerKind = enums.OwnerKindProduct
		rows[i].OwnerID = productID
	}
	return tx.Create(&rows).Error
}

// ResolveReferences reports which of the product's foreign references do not
// resolve to a live lookup row.
func (r *Repository) ResolveReferences(ctx context.Context, refs ReferenceIDs) ([]string, error) {
	checks := []struct {
		field string
		id    int64
		model any
	}{
		{"brand_id", refs.BrandID, &models.Brand{}},
		{"category_id", refs.CategoryID, &models.Category{}},
		{"unit_id", refs.UnitID, &models.Unit{}},
		{"tax_id", refs.TaxID, &models.Tax{}},
	}

	var missing []string
	for _, check := range checks {
		var count int64
		if err := r.db.WithContext(ctx).Model(check.model).Where("id = ?", check.id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			missing = append(missing, check.field)
		}
	}
	return missing, nil
}

// MissingWarehouses returns the warehouse ids that do not resolve to live rows.
func (r *Repository) MissingWarehouses(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Warehouse{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	known := make(map[int64]bool, len(found))
	for _, id := range found {
		known[id] = true
	}

	var missing []int64
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// attachOwnedFiles loads attachments for all given products in one query and
// stitches them onto the owning rows.
func (r *Repository) attachOwnedFiles(ctx context.Context, items []models.Product) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}

	var rows []models.Attachment
	if err := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id IN ?", enums.OwnerKindProduct, ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	byOwner := make(map[int64][]models.Attachment, len(items))
	for _, row := range rows {
		byOwner[row.OwnerID] = append(byOwner[row.OwnerID], row)
	}
	for i := range items {
		items[i].Attachments = byOwner[items[i].ID]
	}
	return nil
}
