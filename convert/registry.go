package convert

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"draftexp/config"
	"draftexp/export"
	"draftexp/render"
)

// newExporterConfig turns configured registries into exporter ones, resolving
// built-in renderers and decorators by name.
func newExporterConfig(conf *config.ExporterConfig, log *zap.Logger) (export.Config, error) {
	builtins := render.Renderers()

	styles, err := conf.ParseStyles()
	if err != nil {
		return export.Config{}, err
	}

	cfg := export.Config{
		Blocks:     make(map[string]export.BlockSpec, len(conf.Blocks)),
		Styles:     styles,
		StyleTags:  maps.Clone(conf.StyleTags),
		Decorators: make(map[string]export.EntityDecorator, len(conf.Entities)),
		Atomic:     make(map[string]export.BlockRenderer, len(conf.Atomic.Renderers)),
		AtomicKey:  conf.Atomic.Key,
	}

	for typ, bc := range conf.Blocks {
		spec, err := blockSpec(&bc, builtins)
		if err != nil {
			return export.Config{}, fmt.Errorf("block %s: %w", typ, err)
		}
		cfg.Blocks[typ] = spec
	}

	for value, name := range conf.Atomic.Renderers {
		r, ok := builtins[name]
		if !ok {
			return export.Config{}, fmt.Errorf("atomic %s: unknown renderer %q", value, name)
		}
		cfg.Atomic[value] = r
	}

	for i := range conf.Atomic.Match {
		m := &conf.Atomic.Match[i]
		spec, err := blockSpec(&m.Block, builtins)
		if err != nil {
			return export.Config{}, fmt.Errorf("atomic match %d: %w", i, err)
		}
		cfg.AtomicMatches = append(cfg.AtomicMatches, export.AtomicMatch{Data: maps.Clone(m.Data), Spec: spec})
	}

	for _, typ := range slices.Sorted(maps.Keys(conf.Entities)) {
		d, err := decorator(conf.Entities[typ])
		if err != nil {
			return export.Config{}, fmt.Errorf("entity %s: %w", typ, err)
		}
		cfg.Decorators[typ] = d
	}

	log.Debug("Exporter registries prepared",
		zap.Int("blocks", len(cfg.Blocks)), zap.Int("styles", len(cfg.Styles)+len(cfg.StyleTags)),
		zap.Int("entities", len(cfg.Decorators)), zap.Int("atomic", len(cfg.Atomic)+len(cfg.AtomicMatches)))
	return cfg, nil
}

func blockSpec(bc *config.BlockConfig, builtins map[string]render.Renderer) (export.BlockSpec, error) {
	spec := export.BlockSpec{
		Element: bc.Element,
		Attrs:   maps.Clone(bc.Attrs),
		Prefix:  bc.Prefix,
		Anchor:  bc.Anchor,
	}
	if bc.Renderer != "" {
		r, ok := builtins[bc.Renderer]
		if !ok {
			return spec, fmt.Errorf("unknown renderer %q", bc.Renderer)
		}
		spec.Renderer = r
	}
	if bc.Wrapper != nil {
		spec.Wrapper = &export.WrapperSpec{
			Element:      bc.Wrapper.Element,
			Attrs:        maps.Clone(bc.Wrapper.Attrs),
			ChildElement: bc.Wrapper.ChildElement,
		}
		if bc.Wrapper.Renderer != "" {
			r, ok := builtins[bc.Wrapper.Renderer]
			if !ok {
				return spec, fmt.Errorf("unknown wrapper renderer %q", bc.Wrapper.Renderer)
			}
			spec.Wrapper.Renderer = r
		}
	}
	return spec, nil
}

func decorator(ec config.EntityConfig) (export.EntityDecorator, error) {
	switch ec.Kind {
	case config.EntityKindLink:
		return &render.Link{Class: ec.Class, Target: ec.Target}, nil
	case config.EntityKindElement:
		el := render.Element{Tag: ec.Element, Attrs: ec.Attrs, DataAttrs: ec.DataAttrs}
		if ec.TextTemplate == "" {
			return &el, nil
		}
		te, err := render.NewTextElement(el, ec.TextTemplate)
		if err != nil {
			return nil, err
		}
		return te, nil
	}
	return nil, fmt.Errorf("unknown decorator kind %q", ec.Kind)
}
