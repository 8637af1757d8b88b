package cloudconfig

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/tsanders-rh/exopolicy/internal/localization"
	"gopkg.in/yaml.v3"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their configuration names rather than Go names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateStruct runs tag validation and reports the first failure as a
// ValidationError
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: fmt.Sprintf("validation failed: %v", err), Err: err}
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	message := fmt.Sprintf("failed %q validation", fe.Tag())
	if fe.Param() != "" {
		message = fmt.Sprintf("failed %q validation (%s)", fe.Tag(), fe.Param())
	}

	return &ValidationError{Field: field, Message: message, Err: err}
}

// Loader reads the deployment configuration and cloud list from files. Both
// YAML and JSON are accepted.
type Loader struct {
	configurationPath string
	cloudConfigsPath  string
}

// NewLoader creates a new loader. An empty configurationPath means the
// deployment uses engine defaults for presentation.
func NewLoader(configurationPath, cloudConfigsPath string) *Loader {
	return &Loader{
		configurationPath: configurationPath,
		cloudConfigsPath:  cloudConfigsPath,
	}
}

// Paths returns the files the loader reads
func (l *Loader) Paths() []string {
	paths := []string{}
	if l.configurationPath != "" {
		paths = append(paths, l.configurationPath)
	}
	return append(paths, l.cloudConfigsPath)
}

// LoadConfiguration reads and validates the deployment record
func (l *Loader) LoadConfiguration() (*Configuration, error) {
	if l.configurationPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(l.configurationPath)
	if err != nil {
		return nil, fmt.Errorf("read configuration file %s: %w", l.configurationPath, err)
	}

	cfg, err := ParseConfiguration(data)
	if err != nil {
		return nil, fmt.Errorf("parse configuration %s: %w", l.configurationPath, err)
	}

	return cfg, nil
}

// LoadCloudConfigs reads and validates the cloud list
func (l *Loader) LoadCloudConfigs() (*CloudConfigs, error) {
	data, err := os.ReadFile(l.cloudConfigsPath)
	if err != nil {
		return nil, fmt.Errorf("read cloud configs file %s: %w", l.cloudConfigsPath, err)
	}

	configs, err := ParseCloudConfigs(data)
	if err != nil {
		return nil, fmt.Errorf("parse cloud configs %s: %w", l.cloudConfigsPath, err)
	}

	return configs, nil
}

// LoadAll reads both files
func (l *Loader) LoadAll() (*Configuration, *CloudConfigs, error) {
	cfg, err := l.LoadConfiguration()
	if err != nil {
		return nil, nil, err
	}

	configs, err := l.LoadCloudConfigs()
	if err != nil {
		return nil, nil, err
	}

	return cfg, configs, nil
}

// ParseConfiguration decodes a deployment record. A document that is empty or
// null decodes to nil, meaning "all defaults".
func ParseConfiguration(data []byte) (*Configuration, error) {
	var cfg *Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if cfg == nil {
		return nil, nil
	}

	if err := validateStruct(cfg); err != nil {
		return nil, err
	}

	if unknown := localization.UnknownTerms(cfg.Localization); len(unknown) > 0 {
		log.Warn().Interface("terms", unknown).Msg("ignoring unknown localization terms")
	}

	return cfg, nil
}

// ParseCloudConfigs decodes and tag-validates a cloud list. Cross-field rules
// are enforced by Load.
func ParseCloudConfigs(data []byte) (*CloudConfigs, error) {
	var configs CloudConfigs
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("decode cloud configs: %w", err)
	}

	if err := validateStruct(&configs); err != nil {
		return nil, err
	}

	return &configs, nil
}
