package jbind

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/jbind/binder"
	"github.com/viant/jbind/classpath"
	"github.com/viant/jbind/parser"
	"github.com/viant/jbind/tree"
)

// Service parses Java sources and hierarchy-binds them against a class path.
type Service struct {
	parser *parser.Parser
	path   *classpath.Path
}

// New creates a Service over the configured class path.
func New(config *classpath.Config) *Service {
	return &Service{
		parser: parser.New(),
		path:   classpath.New(config),
	}
}

// BindSources parses and binds in-memory compilation units.
func (s *Service) BindSources(ctx context.Context, sources ...[]byte) (*binder.BindResult, error) {
	var units []*tree.CompUnit
	for _, source := range sources {
		unit, err := s.parser.Parse(ctx, source)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return binder.Bind(units, s.path, s.path)
}

// BindFiles parses and binds the given source files.
func (s *Service) BindFiles(ctx context.Context, filenames ...string) (*binder.BindResult, error) {
	var units []*tree.CompUnit
	for _, filename := range filenames {
		unit, err := s.parser.ParseFile(ctx, filename)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return binder.Bind(units, s.path, s.path)
}

// BindProject binds every Java source file under rootPath.
func (s *Service) BindProject(ctx context.Context, rootPath string) (*binder.BindResult, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	var filenames []string
	err = filepath.Walk(absPath, func(aPath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fileInfo.IsDir() || !strings.HasSuffix(aPath, ".java") {
			return nil
		}
		filenames = append(filenames, aPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking source directories: %w", err)
	}
	return s.BindFiles(ctx, filenames...)
}
