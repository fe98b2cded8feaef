package config

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// SchemaRegistry manages CUE schemas for suite validation.
type SchemaRegistry struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
	mu      sync.RWMutex
}

// NewSchemaRegistry creates a schema registry with the built-in
// schemas.
func NewSchemaRegistry() *SchemaRegistry {
	sr := &SchemaRegistry{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
	// The built-in schemas are constants and cannot fail to compile.
	_ = sr.RegisterSchema("suite", builtinSuiteSchema)
	return sr
}

// RegisterSchema registers a CUE schema under the given name.
func (sr *SchemaRegistry) RegisterSchema(name, schema string) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	val := sr.ctx.CompileString(schema)
	if err := val.Err(); err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	sr.schemas[name] = val.LookupPath(cue.ParsePath("#" + capitalized(name)))
	return nil
}

// Validate checks data against a named schema.
func (sr *SchemaRegistry) Validate(name string, data interface{}) error {
	sr.mu.RLock()
	schema, ok := sr.schemas[name]
	sr.mu.RUnlock()
	if !ok {
		return fmt.Errorf("schema %s not found", name)
	}

	dataVal := sr.ctx.Encode(data)
	if err := dataVal.Err(); err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}

	unified := schema.Unify(dataVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func capitalized(name string) string {
	if name == "" {
		return name
	}
	return string(name[0]-'a'+'A') + name[1:]
}

// Built-in schema definitions

const builtinSuiteSchema = `
// Suite schema for exercise test-suite documents
#Suite: {
	// exercise is the slug of the exercise under test
	exercise: string & =~"^[a-z0-9-]+$"

	// tasks group the tests
	tasks: [...#Task]
}

#Task: {
	name:  string
	tests: [...#Test]
}

#Test: {
	slug:        string & =~"^[a-zA-Z0-9_-]+$"
	name?:       string
	function?:   string
	args?:       [...]
	expression?: string
	setup?: [...{
		function: string
		args?:    [...]
	}]
	checks: [...#Check]
	imageSlug?: string
	view?:      string
	maxSteps?:  int & >=0
}

#Check: {
	name?:      string
	function?:  string
	args?:      [...]
	property?:  string
	matcher?:   "toBe" | "toEqual" | "toBeTrue" | "toBeFalse" | "toBeGreaterThan" | "toBeLessThan"
	expected?:  _
	errorHtml?: string
}
`
