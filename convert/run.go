// Package convert implements "convert" command: finds editor documents in
// files, directories and zip archives and writes exported HTML next to them.
package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"draftexp/archive"
	"draftexp/draft"
	"draftexp/export"
	"draftexp/state"
)

// StdioName as source reads single document from standard input and writes
// markup to standard output.
const StdioName = "-"

const docExt = ".json"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	env.Options = export.Options{
		Encoding:  env.Cfg.Output.Encoding,
		Separator: env.Cfg.Output.Separator,
	}
	if cmd.IsSet("encoding") {
		env.Options.Encoding = cmd.String("encoding")
	}
	if cmd.IsSet("separator") {
		env.Options.Separator = cmd.String("separator")
	}
	if err := env.Options.Validate(); err != nil {
		return err
	}

	base := env.Log
	if src == StdioName {
		// standard output is taken by markup, console gets errors only
		base = base.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
		log = base.Named("convert")
	}

	cfg, err := newExporterConfig(&env.Cfg.Exporter, log)
	if err != nil {
		return fmt.Errorf("unable to prepare exporter: %w", err)
	}
	env.Exporter = export.New(cfg, base)

	if src == StdioName {
		if cmd.Args().Len() > 1 {
			log.Error("Malformed command line, destination is ignored when reading standard input", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
		}
		return processStdio(ctx, cmd.Root().Reader, cmd.Root().Writer, log)
	}

	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.String("encoding", env.Options.Encoding))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

func processStdio(ctx context.Context, r io.Reader, w io.Writer, log *zap.Logger) error {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	out, err := exportDocument(ctx, r, StdioName, log)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// process determines the input type (directory, archive, or single file) and
// processes it accordingly. Path which does not exist could point inside of
// archive.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := archive.IsArchive(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		// single file is processed regardless of its extension
		if err := processFile(ctx, head, filepath.Base(head), dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
		}
		break
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding documents and archives and
// processes them in natural order of their paths.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	count := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		if strings.EqualFold(filepath.Ext(path), docExt) {
			count++
			if err := processFile(ctx, path, rel, dst, log); err != nil {
				log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			}
			continue
		}

		isArchive, err := archive.IsArchive(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if !isArchive {
			log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			continue
		}
		count++
		if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
			log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
		}
	}
	if count == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return nil
}

// processArchive visits documents inside archive under "pathIn". Output
// paths are built as if archive was a directory named "pathOut".
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	return archive.Walk(path, pathIn, docExt, func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		if err := processDocument(ctx, r, filepath.Join(pathOut, filepath.FromSlash(f.Name)), dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
}

func processFile(ctx context.Context, path, src, dst string, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if env := state.EnvFromContext(ctx); env.Rpt != nil {
		if err := env.Rpt.StoreCopy("source-"+filepath.Base(path), path); err != nil {
			log.Warn("Unable to store source in report", zap.String("file", path), zap.Error(err))
		}
	}
	return processDocument(ctx, file, src, dst, log)
}

// processDocument exports single document. "src" is the part of source path
// relative to the original path (always including file name), "dst" is the
// destination directory.
func processDocument(ctx context.Context, r io.Reader, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	outputName := buildOutputPath(src, dst, env)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	}

	out, err := exportDocument(ctx, r, src, log)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(outputName, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	if env.Rpt != nil {
		name := outputName
		if rel, err := filepath.Rel(dst, outputName); err == nil {
			name = filepath.ToSlash(rel)
		}
		env.Rpt.Store("result-"+name, outputName)
	}
	return nil
}

// exportDocument decodes and exports document returning resulting markup.
// Panic in exporter or its renderers does not stop processing of other
// documents.
func exportDocument(ctx context.Context, r io.Reader, src string, log *zap.Logger) (out string, rerr error) {
	env := state.EnvFromContext(ctx)

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			out, rerr = "", fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.Int("bytes", len(out)))
		}
	}(time.Now())

	doc, err := draft.Decode(r)
	if err != nil {
		return "", fmt.Errorf("unable to parse document (%s): %w", src, err)
	}
	if env.Rpt != nil {
		env.Rpt.AppendData(fmt.Sprintf("parsed/%s.txt", filepath.ToSlash(src)), []byte(doc.String()))
	}
	out, err = env.Exporter.Export(doc, env.Options)
	if err != nil {
		return "", fmt.Errorf("unable to export document (%s): %w", src, err)
	}
	return out, nil
}
