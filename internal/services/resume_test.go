package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParser struct {
	pages []string
	err   error
	calls atomic.Int32
}

func (f *fakeParser) ExtractPages(string) ([]string, error) {
	f.calls.Add(1)
	return f.pages, f.err
}

func writeResumeFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func TestResumeLoaderMissingFile(t *testing.T) {
	parser := &fakeParser{pages: []string{"should not be read"}}
	loader := NewResumeLoader(filepath.Join(t.TempDir(), "absent.pdf"), parser)

	assert.Equal(t, "", loader.Text())
	assert.Equal(t, int32(0), parser.calls.Load())
}

func TestResumeLoaderExtractionErrorIsSwallowed(t *testing.T) {
	parser := &fakeParser{err: errors.New("malformed xref")}
	loader := NewResumeLoader(writeResumeFile(t), parser)

	assert.Equal(t, "", loader.Text())
}

func TestResumeLoaderJoinsPagesAndTrims(t *testing.T) {
	parser := &fakeParser{pages: []string{"  Eddy Zhang", "Go, Python", "AWS  \n"}}
	loader := NewResumeLoader(writeResumeFile(t), parser)

	assert.Equal(t, "Eddy Zhang\nGo, Python\nAWS", loader.Text())
}

func TestResumeLoaderTruncatesToCharacterLimit(t *testing.T) {
	// multi-byte characters make sure the bound is in characters, not bytes
	long := strings.Repeat("é", MaxResumeChars+500)
	parser := &fakeParser{pages: []string{long}}
	loader := NewResumeLoader(writeResumeFile(t), parser)

	assert.Equal(t, MaxResumeChars, loader.Len())
}

func TestResumeLoaderTruncatesBeforeTrimming(t *testing.T) {
	page := strings.Repeat("a", MaxResumeChars-2) + "   tail"
	parser := &fakeParser{pages: []string{page}}
	loader := NewResumeLoader(writeResumeFile(t), parser)

	assert.Equal(t, strings.Repeat("a", MaxResumeChars-2), loader.Text())
}

func TestResumeLoaderCachesResult(t *testing.T) {
	path := writeResumeFile(t)
	parser := &fakeParser{pages: []string{"first read"}}
	loader := NewResumeLoader(path, parser)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "first read", loader.Text())
		}()
	}
	wg.Wait()

	require.NoError(t, os.Remove(path))
	parser.pages = []string{"second read"}

	assert.Equal(t, "first read", loader.Text())
	assert.Equal(t, int32(1), parser.calls.Load())
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "shorter than limit", in: "abc", n: 5, want: "abc"},
		{name: "exact", in: "abc", n: 3, want: "abc"},
		{name: "ascii cut", in: "abcdef", n: 2, want: "ab"},
		{name: "multi-byte cut", in: "日本語テキスト", n: 3, want: "日本語"},
		{name: "zero", in: "abc", n: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateRunes(tt.in, tt.n))
		})
	}
}
