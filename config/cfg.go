package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"draftexp/css"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

// Kinds of entity decorators which could be configured.
const (
	EntityKindLink    = "link"
	EntityKindElement = "element"
)

type (
	TemplateFieldName string

	WrapperConfig struct {
		Element      string            `yaml:"element" validate:"required"`
		Attrs        map[string]string `yaml:"attrs,omitempty"`
		ChildElement string            `yaml:"child_element,omitempty"`
		Renderer     string            `yaml:"renderer,omitempty" validate:"omitempty,oneof=image numbered-list"`
	}

	BlockConfig struct {
		Element  string            `yaml:"element,omitempty" validate:"required_without=Renderer"`
		Attrs    map[string]string `yaml:"attrs,omitempty"`
		Prefix   string            `yaml:"prefix,omitempty"`
		Anchor   bool              `yaml:"anchor,omitempty"`
		Renderer string            `yaml:"renderer,omitempty" validate:"omitempty,oneof=image numbered-list"`
		Wrapper  *WrapperConfig    `yaml:"wrapper,omitempty"`
	}

	AtomicMatchConfig struct {
		Data  map[string]any `yaml:"data" validate:"required,min=1"`
		Block BlockConfig    `yaml:"block"`
	}

	AtomicConfig struct {
		Key       string              `yaml:"key" validate:"required"`
		Renderers map[string]string   `yaml:"renderers,omitempty" validate:"dive,oneof=image numbered-list"`
		Match     []AtomicMatchConfig `yaml:"match,omitempty" validate:"dive"`
	}

	EntityConfig struct {
		Kind         string            `yaml:"kind" validate:"oneof=link element"`
		Element      string            `yaml:"element,omitempty" validate:"required_if=Kind element"`
		Attrs        map[string]string `yaml:"attrs,omitempty"`
		DataAttrs    map[string]string `yaml:"data_attrs,omitempty"`
		TextTemplate string            `yaml:"text_template,omitempty"`
		Class        string            `yaml:"class,omitempty"`
		Target       string            `yaml:"target,omitempty"`
	}

	ExporterConfig struct {
		Blocks    map[string]BlockConfig  `yaml:"blocks" validate:"dive"`
		Atomic    AtomicConfig            `yaml:"atomic"`
		Styles    map[string]string       `yaml:"styles,omitempty"`
		StyleTags map[string]string       `yaml:"style_tags,omitempty" validate:"dive,required"`
		Entities  map[string]EntityConfig `yaml:"entities,omitempty" validate:"dive"`
	}

	OutputConfig struct {
		Encoding              string `yaml:"encoding,omitempty"`
		Separator             string `yaml:"separator,omitempty"`
		Extension             string `yaml:"extension" validate:"required,startswith=."`
		FileNameTransliterate bool   `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Exporter  ExporterConfig `yaml:"exporter"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	TextTemplateFieldName TemplateFieldName = "text_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(TextTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
		if _, err := cfg.Exporter.ParseStyles(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ParseStyles returns style registry with CSS declarations of every style
// parsed into property map.
func (conf *ExporterConfig) ParseStyles() (map[string]map[string]string, error) {
	p := css.NewParser(nil)
	styles := make(map[string]map[string]string, len(conf.Styles))
	for _, name := range slices.Sorted(maps.Keys(conf.Styles)) {
		props, err := p.Declarations(conf.Styles[name])
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		styles[name] = props
	}
	return styles, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
