package fakes

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakesImportPath = "medibook-service/internal/app/services/core/fakes"

func TestOnlyTestFilesImportFakes(t *testing.T) {
	root := filepath.Join("..", "..", "..", "..", "..")
	var offenders []string
	scanned := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		file, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		scanned++
		for _, spec := range file.Imports {
			importPath, _ := strconv.Unquote(spec.Path.Value)
			if importPath == fakesImportPath {
				offenders = append(offenders, path)
			}
		}
		return nil
	})
	require.NoError(t, err)
	require.NotZero(t, scanned)
	assert.Empty(t, offenders, "production code must not depend on test fakes")
}
