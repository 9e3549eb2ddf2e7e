package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrSchemaInvalid reports a front matter schema that cannot be compiled.
var ErrSchemaInvalid = errors.New("lint: front matter schema invalid")

type frontMatterSchemaRule struct {
	compiled *jsonschema.Schema
}

// FrontMatterSchema validates each post's front matter against a JSON
// Schema (Draft 2020-12). The schema is compiled once; compilation failures
// surface immediately so a broken schema never passes silently.
func FrontMatterSchema(schema map[string]any) (Rule, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("%w: schema is empty", ErrSchemaInvalid)
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return frontMatterSchemaRule{compiled: compiled}, nil
}

// FrontMatterSchemaFile loads a schema from a YAML or JSON file and builds
// the rule from it.
func FrontMatterSchemaFile(path string) (Rule, error) {
	schema, err := LoadSchemaFile(path)
	if err != nil {
		return nil, err
	}
	return FrontMatterSchema(schema)
}

// LoadSchemaFile reads a schema definition from disk. YAML is accepted, so
// plain JSON files load too.
func LoadSchemaFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lint: read schema %s: %w", path, err)
	}
	schema := map[string]any{}
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("lint: parse schema %s: %w", path, err)
	}
	return schema, nil
}

func (frontMatterSchemaRule) Name() string       { return "frontmatter-schema" }
func (frontMatterSchemaRule) Severity() Severity { return SeverityError }

func (r frontMatterSchemaRule) Check(_ context.Context, target *Target) []Issue {
	payload := target.Doc.FrontMatter.Raw
	if payload == nil {
		payload = map[string]any{}
	}

	err := r.compiled.Validate(normalizePayload(payload))
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []Issue{newIssue(target, r.Name(), SeverityError, err.Error())}
	}

	issues := []Issue{}
	for _, cause := range leafCauses(validationErr) {
		location := strings.TrimSpace(cause.InstanceLocation)
		if location == "" {
			location = "#"
		}
		msg := fmt.Sprintf("front matter %s: %s", location, strings.TrimSpace(cause.Message))
		issues = append(issues, newIssue(target, r.Name(), SeverityError, msg))
	}
	return issues
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if err == nil {
		return nil
	}
	leaves := []*jsonschema.ValidationError{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			leaves = append(leaves, node)
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return leaves
}

// normalizePayload rebuilds the front matter map through JSON so numeric
// types line up with what the validator expects from decoded JSON.
func normalizePayload(payload map[string]any) any {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return payload
	}
	return out
}
