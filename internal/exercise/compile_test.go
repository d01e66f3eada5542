package exercise

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaffc/internal/chaff"
)

func TestTreeCompiler_Compile(t *testing.T) {
	codeDir := t.TempDir()
	outDir := t.TempDir()

	writeFile(t, filepath.Join(codeDir, "main.py"),
		"def main():\n    ### Region: main\n    ### EndRegion\n")
	writeFile(t, filepath.Join(codeDir, "util", "helpers.py"),
		"# no regions here\n")

	frags := chaff.Fragments{"main": "print('hi')"}

	tc := &TreeCompiler{Workers: 2}
	require.NoError(t, tc.Compile(context.Background(), codeDir, outDir, frags))

	main, err := os.ReadFile(filepath.Join(outDir, "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "def main():\n    print('hi')\n", string(main))

	helpers, err := os.ReadFile(filepath.Join(outDir, "util", "helpers.py"))
	require.NoError(t, err)
	assert.Equal(t, "# no regions here\n", string(helpers))
}

func TestTreeCompiler_NilFragmentsCopiesVerbatim(t *testing.T) {
	codeDir := t.TempDir()
	outDir := t.TempDir()

	content := "def f():\n    ### Region: body\n    pass\n    ### EndRegion\n"
	writeFile(t, filepath.Join(codeDir, "f.py"), content)

	tc := &TreeCompiler{}
	require.NoError(t, tc.Compile(context.Background(), codeDir, outDir, nil))

	got, err := os.ReadFile(filepath.Join(outDir, "f.py"))
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestTreeCompiler_MalformedTemplateFailsRun(t *testing.T) {
	codeDir := t.TempDir()
	outDir := t.TempDir()

	writeFile(t, filepath.Join(codeDir, "bad.py"),
		"### Region: dangling\nnever closed\n")

	tc := &TreeCompiler{}
	err := tc.Compile(context.Background(), codeDir, outDir, chaff.Fragments{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "bad.py")
	assert.ErrorContains(t, err, "dangling")
}

func TestTreeCompiler_CancelledContext(t *testing.T) {
	codeDir := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, filepath.Join(codeDir, "a.py"), "x\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tc := &TreeCompiler{Workers: 1}
	err := tc.Compile(ctx, codeDir, outDir, nil)
	require.ErrorIs(t, err, context.Canceled)
}
