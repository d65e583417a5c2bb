package providers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/validate"
	"github.com/robfig/cron/v3"
	"jobdash/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	if cv.conf.Api.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}
	if cv.conf.Cache.Enabled && cv.conf.Cache.Size <= 0 {
		return errors.New("cache.size must be positive when cache is enabled")
	}
	if cv.conf.Watch.Schedule != "" {
		if _, err := cron.ParseStandard(cv.conf.Watch.Schedule); err != nil {
			return err
		}
	}
	return nil
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
