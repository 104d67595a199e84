package ctxzip

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// boundarySpec accepts a boundary as either a bare string
// ("entire-conversation") or a mapping ({type: first-n-messages, count: 2}).
type boundarySpec struct {
	Type  string
	Count int
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *boundarySpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&b.Type)
	}
	var aux struct {
		Type  string `yaml:"type"`
		Count int    `yaml:"count"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	b.Type = aux.Type
	b.Count = aux.Count
	return nil
}

// optionsFile is the YAML representation of the caller-facing
// configuration surface.
type optionsFile struct {
	Boundary    boundarySpec `yaml:"boundary"`
	Storage     string       `yaml:"storage"`
	ReaderTools []string     `yaml:"readerTools"`
}

// OptionsFromYAML parses Options from YAML configuration data.
//
// Supported fields:
//
//	boundary: entire-conversation | since-last-assistant-or-user-text
//	          | {type: first-n-messages, count: N}
//	storage: a storage URI (e.g. "file:///var/lib/agent/blobs")
//	readerTools: [readFile, grepAndSearchFile]
func OptionsFromYAML(data []byte) (*Options, error) {
	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	opts := &Options{
		StorageURI:      file.Storage,
		ReaderToolNames: file.ReaderTools,
	}

	switch file.Boundary.Type {
	case "":
		// Defaulted by ApplyDefaults.
	case string(BoundarySinceLastText):
		opts.Boundary = SinceLastAssistantOrUserText()
	case string(BoundaryEntireConversation):
		opts.Boundary = EntireConversation()
	case string(BoundaryFirstN):
		opts.Boundary = FirstNMessages(file.Boundary.Count)
	default:
		return nil, fmt.Errorf("%w: unknown boundary type %q", ErrInvalidOptions, file.Boundary.Type)
	}

	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// LoadOptionsFile reads Options from a YAML file.
func LoadOptionsFile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}
	return OptionsFromYAML(data)
}
