package heights

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaBytes []byte

// document is the mapping form of a heights document.
type document struct {
	Heights []int `yaml:"heights"`
}

// LoadFile reads a heights document from path. "-" reads standard input.
func LoadFile(path string) ([]int, error) {
	if path == "-" {
		return Load(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open heights file: %w", err)
	}

	defer f.Close()

	return Load(f)
}

// Load reads a YAML or JSON heights document: either a bare sequence of
// integers or a mapping with a "heights" sequence.
func Load(r io.Reader) ([]int, error) {
	var root yaml.Node

	err := yaml.NewDecoder(r).Decode(&root)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var generic any

	err = root.Decode(&generic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	err = validateShape(generic)
	if err != nil {
		return nil, err
	}

	return decodeHeights(&root)
}

func validateShape(generic any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewGoLoader(generic),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		problems = append(problems, verr.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
}

func decodeHeights(root *yaml.Node) ([]int, error) {
	content := root
	if content.Kind == yaml.DocumentNode && len(content.Content) > 0 {
		content = content.Content[0]
	}

	var out []int

	if content.Kind == yaml.MappingNode {
		var doc document

		err := content.Decode(&doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}

		out = doc.Heights
	} else {
		err := content.Decode(&out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoHeights
	}

	return out, nil
}
