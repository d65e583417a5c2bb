package services

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gookit/validate"
	"jobdash/internal/models"
	"jobdash/internal/providers"
	"jobdash/internal/transport"
)

const preferencesPath = "/auth/preferences/"

type PreferencesInterface interface {
	List(ctx context.Context) ([]models.JobPreference, error)
	Create(ctx context.Context, pref models.JobPreference) (models.JobPreference, error)
	Update(ctx context.Context, pref models.JobPreference) (models.JobPreference, error)
	Delete(ctx context.Context, id int64) error
}

// Preferences manages the saved searches that drive server-side matching.
type Preferences struct {
	api    transport.Requester
	logger providers.Logger
}

func NewPreferences(api transport.Requester, logger providers.Logger) *Preferences {
	return &Preferences{
		api:    api,
		logger: logger,
	}
}

func preferencePath(id int64) string {
	return preferencesPath + strconv.FormatInt(id, 10) + "/"
}

func (p *Preferences) List(ctx context.Context) ([]models.JobPreference, error) {
	return fetchList[models.JobPreference](ctx, p.api, preferencesPath, nil)
}

func (p *Preferences) Create(ctx context.Context, pref models.JobPreference) (models.JobPreference, error) {
	if err := ValidatePreference(&pref); err != nil {
		return models.JobPreference{}, err
	}
	var created models.JobPreference
	err := p.api.Do(ctx, transport.Request{Method: http.MethodPost, Path: preferencesPath, Body: pref}, &created)
	if err != nil {
		return models.JobPreference{}, err
	}
	p.logger.Infof(providers.TypeJobs, "Created preference %d (%s)", created.ID, created.Keywords)
	return created, nil
}

func (p *Preferences) Update(ctx context.Context, pref models.JobPreference) (models.JobPreference, error) {
	if pref.ID <= 0 {
		return models.JobPreference{}, &transport.ValidationError{Fields: map[string][]string{"id": {"id is required"}}}
	}
	if err := ValidatePreference(&pref); err != nil {
		return models.JobPreference{}, err
	}
	var updated models.JobPreference
	err := p.api.Do(ctx, transport.Request{Method: http.MethodPut, Path: preferencePath(pref.ID), Body: pref}, &updated)
	if err != nil {
		return models.JobPreference{}, err
	}
	return updated, nil
}

func (p *Preferences) Delete(ctx context.Context, id int64) error {
	if err := p.api.Do(ctx, transport.Request{Method: http.MethodDelete, Path: preferencePath(id)}, nil); err != nil {
		return err
	}
	p.logger.Infof(providers.TypeJobs, "Deleted preference %d", id)
	return nil
}

// ValidatePreference normalizes pref in place and reports problems the
// server would reject, in the server's error shape.
func ValidatePreference(pref *models.JobPreference) error {
	pref.Keywords = strings.TrimSpace(pref.Keywords)

	fields := make(map[string][]string)
	v := validate.Struct(pref)
	if !v.Validate() {
		for field, msgs := range v.Errors {
			key := jsonFieldName(field)
			for _, msg := range msgs {
				fields[key] = append(fields[key], msg)
			}
			sort.Strings(fields[key])
		}
	}
	if pref.MinSalary != nil && pref.MaxSalary != nil && *pref.MinSalary > *pref.MaxSalary {
		fields["non_field_errors"] = append(fields["non_field_errors"], "Minimum salary cannot be greater than maximum salary.")
	}
	if len(fields) > 0 {
		return &transport.ValidationError{Fields: fields}
	}
	return nil
}

var preferenceFieldNames = map[string]string{
	"Keywords":        "keywords",
	"LocationType":    "location_type",
	"ExperienceLevel": "experience_level",
	"JobType":         "job_type",
}

func jsonFieldName(field string) string {
	if name, ok := preferenceFieldNames[field]; ok {
		return name
	}
	return field
}
