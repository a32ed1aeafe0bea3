package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError is a config file problem, located by line or by setting.
type ValidationError struct {
	FilePath string
	Line     int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// yamlLinePattern splits yaml.v3 syntax errors such as
// "yaml: line 5: could not find expected ':'".
var yamlLinePattern = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// settingsValidator reports fields by their koanf key.
var settingsValidator = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	return v
}()

// ValidateYAMLSyntax checks that the file at filePath parses as YAML.
// A missing file is not an error.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	return ValidateYAMLSyntaxFromBytes(data, filePath)
}

// ValidateYAMLSyntaxFromBytes checks that data parses as YAML.
func ValidateYAMLSyntaxFromBytes(data []byte, filePath string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	err := yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	var typeError *yaml.TypeError
	if errors.As(err, &typeError) {
		return &ValidationError{FilePath: filePath, Message: strings.Join(typeError.Errors, "; ")}
	}
	if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &ValidationError{FilePath: filePath, Line: line, Message: m[2]}
	}
	return &ValidationError{FilePath: filePath, Message: err.Error()}
}

// ValidateConfigValues checks the loaded settings. The changelog file must
// stay inside the repository.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	if err := settingsValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fieldErr := fieldErrs[0]
			return &ValidationError{
				FilePath: filePath,
				Field:    fieldErr.Field(),
				Message:  describeFieldError(fieldErr),
			}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if filepath.IsAbs(cfg.ChangelogFile) || hasParentSegment(cfg.ChangelogFile) {
		return &ValidationError{
			FilePath: filePath,
			Field:    "changelog_file",
			Message:  "must be a path relative to the repository root",
		}
	}

	return nil
}

func hasParentSegment(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}
