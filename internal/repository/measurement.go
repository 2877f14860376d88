package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

var (
	ErrMeasurementNotFound  = errors.New("measurement not found")
	ErrDuplicateMeasurement = errors.New("measurement name already exists")
)

type MeasurementRepository interface {
	All() ([]*model.Measurement, error)
	ByID(id string) (*model.Measurement, error)
	NameExists(name, excludeID string) (bool, error)
	Create(m *model.Measurement) error
	Update(m *model.Measurement) error
	Delete(id string) error
}

var measurementTable = table[model.Measurement]{name: "measurement", idColumn: "id", notFound: ErrMeasurementNotFound}

type measurementRepository struct {
	db sqlx.Ext
}

func NewMeasurementRepository(db *sqlx.DB) MeasurementRepository {
	return &measurementRepository{db: db}
}

func (r *measurementRepository) All() ([]*model.Measurement, error) {
	return measurementTable.bySQL(r.db, `SELECT * FROM measurement ORDER BY name ASC`)
}

func (r *measurementRepository) ByID(id string) (*model.Measurement, error) {
	return measurementTable.byID(r.db, id)
}

func (r *measurementRepository) NameExists(name, excludeID string) (bool, error) {
	n, err := measurementTable.countBySQL(r.db,
		`SELECT COUNT(*) FROM measurement WHERE LOWER(name) = LOWER(?) AND id <> ?`, name, excludeID)
	return n > 0, err
}

func (r *measurementRepository) Create(m *model.Measurement) error {
	err := measurementTable.insert(r.db, m, "id", "name")
	if isUniqueViolation(err) {
		return ErrDuplicateMeasurement
	}
	return err
}

func (r *measurementRepository) Update(m *model.Measurement) error {
	err := measurementTable.update(r.db, m, "id", "name")
	if isUniqueViolation(err) {
		return ErrDuplicateMeasurement
	}
	return err
}

func (r *measurementRepository) Delete(id string) error {
	return measurementTable.delete(r.db, id)
}
