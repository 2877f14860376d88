package repository

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

var (
	ErrAttributeNotFound  = errors.New("recipe attribute not found")
	ErrDuplicateAttribute = errors.New("recipe attribute name already exists")
)

// AttributeRepository serves the style, diet and type lookup tables.
// Every call names its kind, so the repository itself holds no table state.
type AttributeRepository interface {
	ByKind(kind model.AttributeKind) ([]*model.Attribute, error)
	ByID(kind model.AttributeKind, id string) (*model.Attribute, error)
	NameExists(kind model.AttributeKind, name, excludeID string) (bool, error)
	Create(attr *model.Attribute) error
	Update(attr *model.Attribute) error
	Delete(kind model.AttributeKind, id string) error
	CountRecipes(kind model.AttributeKind, id string) (int, error)
}

type attributeRepository struct {
	db sqlx.Ext
}

func NewAttributeRepository(db *sqlx.DB) AttributeRepository {
	return &attributeRepository{db: db}
}

func attributeTableFor(kind model.AttributeKind) (table[model.Attribute], error) {
	if !kind.Valid() {
		return table[model.Attribute]{}, fmt.Errorf("unknown recipe attribute kind %q", kind)
	}
	t := kind.Table()
	return table[model.Attribute]{name: t.Table, idColumn: t.IDColumn, notFound: ErrAttributeNotFound}, nil
}

func (r *attributeRepository) ByKind(kind model.AttributeKind) ([]*model.Attribute, error) {
	t, err := attributeTableFor(kind)
	if err != nil {
		return nil, err
	}

	attrs, err := t.bySQL(r.db, fmt.Sprintf("SELECT id, name FROM %s ORDER BY name ASC", t.name))
	if err != nil {
		return nil, err
	}
	for _, a := range attrs {
		a.Kind = kind
	}
	return attrs, nil
}

func (r *attributeRepository) ByID(kind model.AttributeKind, id string) (*model.Attribute, error) {
	t, err := attributeTableFor(kind)
	if err != nil {
		return nil, err
	}

	attr, err := t.byID(r.db, id)
	if err != nil {
		return nil, err
	}
	attr.Kind = kind
	return attr, nil
}

func (r *attributeRepository) NameExists(kind model.AttributeKind, name, excludeID string) (bool, error) {
	t, err := attributeTableFor(kind)
	if err != nil {
		return false, err
	}

	n, err := t.countBySQL(r.db,
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE LOWER(name) = LOWER(?) AND id <> ?", t.name),
		name, excludeID)
	return n > 0, err
}

func (r *attributeRepository) Create(attr *model.Attribute) error {
	t, err := attributeTableFor(attr.Kind)
	if err != nil {
		return err
	}

	err = t.insert(r.db, attr, "id", "name")
	if isUniqueViolation(err) {
		return ErrDuplicateAttribute
	}
	return err
}

func (r *attributeRepository) Update(attr *model.Attribute) error {
	t, err := attributeTableFor(attr.Kind)
	if err != nil {
		return err
	}

	err = t.update(r.db, attr, "id", "name")
	if isUniqueViolation(err) {
		return ErrDuplicateAttribute
	}
	return err
}

func (r *attributeRepository) Delete(kind model.AttributeKind, id string) error {
	t, err := attributeTableFor(kind)
	if err != nil {
		return err
	}
	return t.delete(r.db, id)
}

// CountRecipes reports how many recipes reference the attribute
func (r *attributeRepository) CountRecipes(kind model.AttributeKind, id string) (int, error) {
	t, err := attributeTableFor(kind)
	if err != nil {
		return 0, err
	}

	col := kind.Table().RecipeColumn
	return t.countBySQL(r.db, fmt.Sprintf("SELECT COUNT(*) FROM recipe WHERE %s = ?", col), id)
}
