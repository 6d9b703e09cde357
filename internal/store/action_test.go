package store

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportedActionsAreDocumented(t *testing.T) {
	file, err := parser.ParseFile(token.NewFileSet(), "action.go", nil, parser.ParseComments)
	require.NoError(t, err)

	var checked int
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if !ts.Name.IsExported() {
				continue
			}
			checked++
			doc := ts.Doc
			if doc == nil {
				doc = gen.Doc
			}
			if assert.NotNil(t, doc, "%s has no doc comment", ts.Name.Name) {
				assert.Regexp(t, "^"+ts.Name.Name+" ", doc.Text(), "%s doc does not start with its name", ts.Name.Name)
			}
		}
	}
	assert.Greater(t, checked, 30)
}
