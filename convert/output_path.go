package convert

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"

	"draftexp/config"
	"draftexp/state"
)

// buildOutputPath returns output file path for the document. "src" is
// relative source path including file name. Unless NoDirs is set source
// directory structure is preserved under "dst". Every path segment is cleaned
// and, if requested, transliterated.
func buildOutputPath(src, dst string, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	return filepath.Join(outDir, buildDefaultFileName(src, env))
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	parts := []string{dst}
	for _, segment := range splitPath(filepath.Dir(src)) {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	return filepath.Join(parts...)
}

func buildDefaultFileName(src string, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return cleanPathSegment(baseName, env) + env.Cfg.Output.Extension
}

// splitPath returns meaningful segments of relative path.
func splitPath(path string) []string {
	segments := make([]string, 0, 8)
	for _, s := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if s == "" || s == "." || s == ".." {
			continue
		}
		segments = append(segments, s)
	}
	return slices.Clip(segments)
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Output.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
