package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"
)

// ErrNotObject is returned when operator input decodes to something other
// than a JSON object.
var ErrNotObject = errors.New("expected an object at the top level")

// InputError reports operator-supplied text that could not be decoded. The
// request it belonged to must not be sent.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ParseDocument decodes operator text into a Document. source names the input
// in error messages; a source ending in .yaml or .yml is decoded as YAML,
// anything else as JSON5. Blank input yields a nil Document.
//
// Numbers are kept as json.Number so they reach the wire with the digits the
// operator wrote. YAML scalars that would change on a round trip (dates,
// leading zeros, octal or hex integers) are kept as their source text.
func ParseDocument(source string, data []byte) (Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var decoded any
	var err error
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		decoded, err = decodeYAML(data)
	default:
		decoded, err = decodeJSON5(data)
	}
	if err != nil {
		return nil, &InputError{Source: source, Err: err}
	}

	doc, ok := decoded.(map[string]any)
	if !ok {
		return nil, &InputError{Source: source, Err: ErrNotObject}
	}
	return doc, nil
}

// ReadDocument reads and decodes the file at path.
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseDocument(path, data)
}

func decodeJSON5(data []byte) (any, error) {
	dec := json5.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, err
	}
	return json5Numbers(decoded), nil
}

// json5Numbers replaces json5.Number values in place with json.Number.
func json5Numbers(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for key, item := range value {
			value[key] = json5Numbers(item)
		}
	case []any:
		for i, item := range value {
			value[i] = json5Numbers(item)
		}
	case json5.Number:
		return jsonNumber(value.String())
	}
	return v
}

// jsonNumber returns text as a json.Number when it can be written as a JSON
// number literal, and unchanged otherwise.
func jsonNumber(text string) any {
	if json.Valid([]byte(text)) {
		return json.Number(text)
	}
	if n, err := strconv.ParseInt(text, 0, 64); err == nil {
		return json.Number(strconv.FormatInt(n, 10))
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return text
}

func decodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, nil
	}
	return yamlValue(&root)
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return yamlValue(node.Content[0])
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.MappingNode:
		return yamlMapping(node)
	default:
		return yamlScalar(node), nil
	}
}

// yamlMapping decodes a mapping. Keys given explicitly win over keys pulled in
// with a << merge.
func yamlMapping(node *yaml.Node) (map[string]any, error) {
	out := make(map[string]any, len(node.Content)/2)
	merged := map[string]any{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, item := node.Content[i], node.Content[i+1]
		value, err := yamlValue(item)
		if err != nil {
			return nil, err
		}
		if key.ShortTag() == "!!merge" {
			sources, ok := value.([]any)
			if !ok {
				sources = []any{value}
			}
			for _, source := range sources {
				entries, ok := source.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("line %d: << needs a mapping", key.Line)
				}
				for name, entry := range entries {
					if _, exists := merged[name]; !exists {
						merged[name] = entry
					}
				}
			}
			continue
		}
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}
		out[key.Value] = value
	}
	for name, entry := range merged {
		if _, exists := out[name]; !exists {
			out[name] = entry
		}
	}
	return out, nil
}

func yamlScalar(node *yaml.Node) any {
	switch node.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		if isDecimal(node.Value) {
			return json.Number(node.Value)
		}
	case "!!float":
		if number, ok := jsonNumber(node.Value).(json.Number); ok {
			return number
		}
	}
	return node.Value
}

// isDecimal reports whether text is a base-10 integer without a sign prefix
// other than "-" and without leading zeros.
func isDecimal(text string) bool {
	digits := strings.TrimPrefix(text, "-")
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
