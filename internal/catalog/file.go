package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"personality-quiz/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed quiz.schema.json
var quizSchemaJSON []byte

const quizSchemaURL = "schema://quiz.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// FileLoader reads one quiz per YAML document from a directory, in file
// name order. Each document is checked against the quiz JSON schema before
// it is decoded.
type FileLoader struct {
	dir string
}

func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{dir: dir}
}

func (l *FileLoader) LoadQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read quiz dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	quizzes := make([]domain.Quiz, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(l.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		quiz, err := ParseQuizYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

// ParseQuizYAML validates a YAML quiz document against the schema and decodes it.
func ParseQuizYAML(data []byte) (domain.Quiz, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Quiz{}, fmt.Errorf("%w: parse yaml: %v", domain.ErrInvalidQuiz, err)
	}
	if err := validateDocument(doc); err != nil {
		return domain.Quiz{}, err
	}
	var quiz domain.Quiz
	if err := yaml.Unmarshal(data, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("%w: decode: %v", domain.ErrInvalidQuiz, err)
	}
	if quiz.Theme == "" {
		quiz.Theme = domain.ThemeAnimal
	}
	return quiz, nil
}

func validateDocument(doc any) error {
	schema, err := quizSchema()
	if err != nil {
		return fmt.Errorf("compile quiz schema: %w", err)
	}
	// The validator wants JSON-shaped values; round-trip through JSON so
	// YAML scalars become json.Number and map[string]any.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuiz, err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuiz, err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("%w: schema validation failed: %v", domain.ErrInvalidQuiz, err)
	}
	return nil
}

func quizSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(quizSchemaJSON))
		if err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(quizSchemaURL, def); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = c.Compile(quizSchemaURL)
	})
	return compiledSchema, schemaErr
}
