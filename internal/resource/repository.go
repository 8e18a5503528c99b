package resource

import (
	"context"
	"reflect"

	"gorm.io/gorm"

	"pipecrm/internal/events"
	console "pipecrm/internal/utils/logger"
)

var log = console.New("resource")

// Privilege is resolved once when a repository is constructed, not re-decided
// per call site. Anonymous repositories enforce owner scoping on descriptors
// that declare an owner field; service repositories bypass it.
type Privilege int

const (
	PrivilegeAnon Privilege = iota
	PrivilegeService
)

// DefaultLimit is the page size applied when the caller supplies none.
const DefaultLimit = 100

// Page is one page of a list result together with the filtered total.
type Page[T any] struct {
	Items []T
	Count int64
}

// Store is the contract the HTTP layer programs against. Repository is the
// gorm-backed implementation; tests substitute in-memory fakes.
type Store[T any] interface {
	List(ctx context.Context, ownerID string, filters map[string]string, limit, offset int) (*Page[T], error)
	Get(ctx context.Context, ownerID, id string) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, ownerID, id string, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Repository provides CRUD for a single resource against Postgres. Reads
// request the descriptor's relation includes and degrade to base fields when
// the live schema rejects them (see fallback notes on List and Get).
type Repository[T any] struct {
	db   *gorm.DB
	desc Descriptor
	priv Privilege
}

func NewRepository[T any](db *gorm.DB, desc Descriptor, priv Privilege) *Repository[T] {
	return &Repository[T]{db: db, desc: desc, priv: priv}
}

// Descriptor exposes the resource contract this repository was built with.
func (r *Repository[T]) Descriptor() Descriptor { return r.desc }

// query builds a fresh statement. Filter keys outside the descriptor's
// allow-list were already discarded by the caller, but the check here makes
// the repository safe to call directly.
func (r *Repository[T]) query(ctx context.Context, ownerID string, filters map[string]string, withIncludes bool) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	if r.scoped(ownerID) {
		q = q.Where(r.desc.OwnerField+" = ?", ownerID)
	}
	for field, value := range filters {
		if r.desc.FilterAllowed(field) {
			q = q.Where(field+" = ?", value)
		}
	}
	if withIncludes {
		for _, include := range r.desc.Includes {
			q = q.Preload(include)
		}
	}
	return q
}

func (r *Repository[T]) scoped(ownerID string) bool {
	return r.priv == PrivilegeAnon && r.desc.OwnerField != "" && ownerID != ""
}

// List returns one page ordered by created_at descending. A limit of zero is
// a valid request for an empty page, not an error; the caller applies
// DefaultLimit when the parameter was absent.
//
// The primary query embeds the descriptor's includes. If it fails with the
// relation-missing class the identical query (same filters, same page) is
// re-issued once without includes, so the endpoint degrades instead of
// failing while the schema is mid-migration. Any other error propagates.
func (r *Repository[T]) List(ctx context.Context, ownerID string, filters map[string]string, limit, offset int) (*Page[T], error) {
	if limit <= 0 {
		return &Page[T]{Items: []T{}}, nil
	}
	if offset < 0 {
		offset = 0
	}

	var count int64
	if err := r.query(ctx, ownerID, filters, false).Count(&count).Error; err != nil {
		return nil, Classify(r.desc.Singular, r.desc.Name, err)
	}

	var items []T
	err := r.query(ctx, ownerID, filters, true).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil && IsRelationMissing(err) {
		log.Warn("%s: join failed (%v), retrying without includes", r.desc.Name, err)
		items = nil
		err = r.query(ctx, ownerID, filters, false).
			Order("created_at DESC").Limit(limit).Offset(offset).
			Find(&items).Error
	}
	if err != nil {
		return nil, Classify(r.desc.Singular, r.desc.Name, err)
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Count: count}, nil
}

// Get returns exactly one record or NotFound. The join fallback applies the
// same way as in List.
func (r *Repository[T]) Get(ctx context.Context, ownerID, id string) (*T, error) {
	var entity T
	err := r.query(ctx, ownerID, nil, true).First(&entity, "id = ?", id).Error
	if err != nil && IsRelationMissing(err) {
		log.Warn("%s: join failed (%v), retrying without includes", r.desc.Name, err)
		entity = *new(T)
		err = r.query(ctx, ownerID, nil, false).First(&entity, "id = ?", id).Error
	}
	if err != nil {
		return nil, Classify(r.desc.Singular, r.desc.Name, err)
	}
	return &entity, nil
}

// Create persists the entity and reloads it with includes so the response
// carries related sub-objects when the schema allows. A relation-missing
// failure during the reload is swallowed: the base record was stored and is
// returned as-is.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return Classify(r.desc.Singular, r.desc.Name, err)
	}

	if len(r.desc.Includes) > 0 {
		id := entityID(entity)
		var reloaded T
		err := r.query(ctx, "", nil, true).First(&reloaded, "id = ?", id).Error
		if err == nil {
			*entity = reloaded
		} else if !IsRelationMissing(err) {
			return Classify(r.desc.Singular, r.desc.Name, err)
		}
	}

	events.Emit(r.desc.Name+".created", entity)
	return nil
}

// Update writes only the fields present in the map. An explicit null is an
// intentional clear and becomes SQL NULL; omitted keys are untouched.
// Identifiers and timestamps are never writable regardless of input.
func (r *Repository[T]) Update(ctx context.Context, ownerID, id string, fields map[string]interface{}) (*T, error) {
	updates := make(map[string]interface{}, len(fields))
	for field, value := range fields {
		if r.desc.FieldWritable(field) {
			updates[field] = value
		}
	}
	if len(updates) == 0 {
		return r.Get(ctx, ownerID, id)
	}

	res := r.query(ctx, ownerID, nil, false).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, Classify(r.desc.Singular, r.desc.Name, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, NotFoundError(r.desc.Singular)
	}

	entity, err := r.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	events.Emit(r.desc.Name+".updated", entity)
	return entity, nil
}

// Delete removes the row. Deleting an id that does not exist (or was already
// deleted) reports NotFound so callers can tell whether a row actually
// existed.
func (r *Repository[T]) Delete(ctx context.Context, ownerID, id string) error {
	res := r.query(ctx, ownerID, nil, false).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return Classify(r.desc.Singular, r.desc.Name, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFoundError(r.desc.Singular)
	}
	events.Emit(r.desc.Name+".deleted", id)
	return nil
}

// entityID reads the promoted Base.ID field.
func entityID(entity interface{}) string {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	field := v.FieldByName("ID")
	if !field.IsValid() {
		return ""
	}
	return field.String()
}
