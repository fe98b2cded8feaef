// Package config loads and validates declarative test-suite documents.
// A suite file is YAML, validated twice: structurally against a CUE
// schema, then semantically through struct tags.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jikirun/jikirun/pkg/runner"
)

// Suite is one exercise's declarative test suite.
type Suite struct {
	// Exercise is the slug of the exercise under test.
	Exercise string `yaml:"exercise" validate:"required"`

	// Tasks group the tests the way they are presented to students.
	Tasks []Task `yaml:"tasks" validate:"required,min=1,dive"`
}

// Task is one named group of tests.
type Task struct {
	Name  string     `yaml:"name" validate:"required"`
	Tests []TestSpec `yaml:"tests" validate:"required,min=1,dive"`
}

// TestSpec mirrors runner.TaskTest in suite-file form.
type TestSpec struct {
	Slug       string        `yaml:"slug" validate:"required"`
	Name       string        `yaml:"name,omitempty"`
	Function   string        `yaml:"function,omitempty"`
	Args       []interface{} `yaml:"args,omitempty"`
	Expression string        `yaml:"expression,omitempty"`
	Setup      []SetupSpec   `yaml:"setup,omitempty" validate:"dive"`
	Checks     []CheckSpec   `yaml:"checks" validate:"required,min=1,dive"`
	ImageSlug  string        `yaml:"imageSlug,omitempty"`
	View       string        `yaml:"view,omitempty"`
	MaxSteps   uint64        `yaml:"maxSteps,omitempty"`
}

// SetupSpec is one setup call in suite-file form.
type SetupSpec struct {
	Function string        `yaml:"function" validate:"required"`
	Args     []interface{} `yaml:"args,omitempty"`
}

// CheckSpec is one assertion in suite-file form.
type CheckSpec struct {
	Name      string        `yaml:"name,omitempty"`
	Function  string        `yaml:"function,omitempty"`
	Args      []interface{} `yaml:"args,omitempty"`
	Property  string        `yaml:"property,omitempty"`
	Matcher   string        `yaml:"matcher,omitempty" validate:"omitempty,oneof=toBe toEqual toBeTrue toBeFalse toBeGreaterThan toBeLessThan"`
	Expected  interface{}   `yaml:"expected,omitempty"`
	ErrorHTML string        `yaml:"errorHtml,omitempty"`
}

// Loader parses and validates suite files.
type Loader struct {
	schemas   *SchemaRegistry
	validator *validator.Validate
}

// NewLoader creates a loader with the built-in schemas.
func NewLoader() *Loader {
	return &Loader{
		schemas:   NewSchemaRegistry(),
		validator: validator.New(),
	}
}

// Load reads, validates, and decodes one suite file.
func (l *Loader) Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return l.Parse(data)
}

// Parse validates and decodes a suite document.
func (l *Loader) Parse(data []byte) (*Suite, error) {
	// Schema validation first, over the untyped document, so shape
	// errors name the offending field instead of failing the decode.
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("suite file is not valid YAML: %w", err)
	}
	if err := l.schemas.Validate("suite", doc); err != nil {
		return nil, fmt.Errorf("suite file failed schema validation: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to decode suite file: %w", err)
	}
	if err := l.validator.Struct(&suite); err != nil {
		return nil, fmt.Errorf("suite validation failed: %w", err)
	}

	for _, task := range suite.Tasks {
		for _, test := range task.Tests {
			if test.Function != "" && test.Expression != "" {
				return nil, fmt.Errorf("test %q declares both a function and an expression", test.Slug)
			}
		}
	}
	return &suite, nil
}

// Tests flattens the suite into runner test cases, in declaration
// order.
func (s *Suite) Tests() []runner.TaskTest {
	var tests []runner.TaskTest
	for _, task := range s.Tasks {
		for _, spec := range task.Tests {
			tests = append(tests, spec.toTaskTest())
		}
	}
	return tests
}

func (spec *TestSpec) toTaskTest() runner.TaskTest {
	test := runner.TaskTest{
		Slug:       spec.Slug,
		Name:       spec.Name,
		Function:   spec.Function,
		Args:       spec.Args,
		Expression: spec.Expression,
		ImageSlug:  spec.ImageSlug,
		View:       spec.View,
		MaxSteps:   spec.MaxSteps,
	}
	for _, setup := range spec.Setup {
		test.Setup = append(test.Setup, runner.SetupCall{Function: setup.Function, Args: setup.Args})
	}
	for _, check := range spec.Checks {
		test.Checks = append(test.Checks, runner.ExpectCheck{
			Name:      check.Name,
			Function:  check.Function,
			Args:      check.Args,
			Property:  check.Property,
			Matcher:   check.Matcher,
			Expected:  check.Expected,
			ErrorHTML: check.ErrorHTML,
		})
	}
	return test
}
