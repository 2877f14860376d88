package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
)

// AttributeOptions holds every lookup list a recipe form or filter bar needs
type AttributeOptions struct {
	Styles       []*model.Attribute
	Diets        []*model.Attribute
	Types        []*model.Attribute
	Measurements []*model.Measurement
}

// ByKind returns the list for one attribute kind
func (o AttributeOptions) ByKind(kind model.AttributeKind) []*model.Attribute {
	switch kind {
	case model.AttributeStyle:
		return o.Styles
	case model.AttributeDiet:
		return o.Diets
	case model.AttributeType:
		return o.Types
	}
	return nil
}

// AttributeService manages styles, diets, types and measurements
type AttributeService struct {
	attributeRepository   repository.AttributeRepository
	measurementRepository repository.MeasurementRepository
}

func NewAttributeService(
	attributeRepository repository.AttributeRepository,
	measurementRepository repository.MeasurementRepository,
) *AttributeService {
	return &AttributeService{
		attributeRepository:   attributeRepository,
		measurementRepository: measurementRepository,
	}
}

func (s *AttributeService) Options() (AttributeOptions, error) {
	var opts AttributeOptions
	var err error

	opts.Styles, err = s.attributeRepository.ByKind(model.AttributeStyle)
	if err != nil {
		return opts, fmt.Errorf("failed to load styles: %w", err)
	}
	opts.Diets, err = s.attributeRepository.ByKind(model.AttributeDiet)
	if err != nil {
		return opts, fmt.Errorf("failed to load diets: %w", err)
	}
	opts.Types, err = s.attributeRepository.ByKind(model.AttributeType)
	if err != nil {
		return opts, fmt.Errorf("failed to load types: %w", err)
	}
	opts.Measurements, err = s.measurementRepository.All()
	if err != nil {
		return opts, fmt.Errorf("failed to load measurements: %w", err)
	}
	return opts, nil
}

func (s *AttributeService) List(kind model.AttributeKind) ([]*model.Attribute, error) {
	return s.attributeRepository.ByKind(kind)
}

// Exists reports whether id names a row of kind. An empty id is valid (no selection).
func (s *AttributeService) Exists(kind model.AttributeKind, id string) (bool, error) {
	if id == "" {
		return true, nil
	}
	_, err := s.attributeRepository.ByID(kind, id)
	if errors.Is(err, repository.ErrAttributeNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Save creates the attribute when ID is empty and updates it otherwise
func (s *AttributeService) Save(actor Actor, attr *model.Attribute) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	errs := attr.Validate()
	if !errs.Empty() {
		return errs
	}

	exists, err := s.attributeRepository.NameExists(attr.Kind, attr.Name, attr.ID)
	if err != nil {
		return fmt.Errorf("failed to check name: %w", err)
	}
	if exists {
		errs.Add("name", fmt.Sprintf("a %s named %q already exists", attr.Kind, attr.Name))
		return errs
	}

	if attr.ID == "" {
		attr.ID = uuid.New().String()
		err = s.attributeRepository.Create(attr)
	} else {
		err = s.attributeRepository.Update(attr)
	}
	if errors.Is(err, repository.ErrDuplicateAttribute) {
		errs.Add("name", fmt.Sprintf("a %s named %q already exists", attr.Kind, attr.Name))
		return errs
	}
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", attr.Kind, err)
	}

	slog.Info("recipe attribute saved", "kind", attr.Kind, "id", attr.ID, "by", actor.UserID)
	return nil
}

// Delete removes the attribute; recipes using it keep existing with the field cleared
func (s *AttributeService) Delete(actor Actor, kind model.AttributeKind, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	n, err := s.attributeRepository.CountRecipes(kind, id)
	if err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}

	err = s.attributeRepository.Delete(kind, id)
	if err != nil {
		return err
	}

	slog.Info("recipe attribute deleted", "kind", kind, "id", id, "recipes_cleared", n, "by", actor.UserID)
	return nil
}

func (s *AttributeService) Measurements() ([]*model.Measurement, error) {
	return s.measurementRepository.All()
}

func (s *AttributeService) SaveMeasurement(actor Actor, m *model.Measurement) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	errs := m.Validate()
	if !errs.Empty() {
		return errs
	}

	exists, err := s.measurementRepository.NameExists(m.Name, m.ID)
	if err != nil {
		return fmt.Errorf("failed to check name: %w", err)
	}
	if exists {
		errs.Add("name", fmt.Sprintf("a measurement named %q already exists", m.Name))
		return errs
	}

	if m.ID == "" {
		m.ID = uuid.New().String()
		err = s.measurementRepository.Create(m)
	} else {
		err = s.measurementRepository.Update(m)
	}
	if errors.Is(err, repository.ErrDuplicateMeasurement) {
		errs.Add("name", fmt.Sprintf("a measurement named %q already exists", m.Name))
		return errs
	}
	if err != nil {
		return fmt.Errorf("failed to save measurement: %w", err)
	}
	return nil
}

func (s *AttributeService) DeleteMeasurement(actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.measurementRepository.Delete(id)
}

// checkMeasurement returns a validation message when id is set but unknown
func (s *AttributeService) checkMeasurement(id string) (string, error) {
	if id == "" {
		return "", nil
	}
	_, err := s.measurementRepository.ByID(id)
	if errors.Is(err, repository.ErrMeasurementNotFound) {
		return "unknown measurement", nil
	}
	return "", err
}
