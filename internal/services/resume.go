package services

import (
	"log"
	"os"
	"strings"
	"sync"
	"unicode/utf8"
)

// MaxResumeChars bounds the cached resume text, counted in characters.
const MaxResumeChars = 40000

// ResumeLoader extracts the resume text on first use and serves the cached
// copy for the rest of the process lifetime.
type ResumeLoader struct {
	path   string
	parser DocumentParserService

	once sync.Once
	text string
}

func NewResumeLoader(path string, parser DocumentParserService) *ResumeLoader {
	return &ResumeLoader{
		path:   path,
		parser: parser,
	}
}

// Text returns the cached resume text. Extraction failures degrade to an
// empty string.
func (l *ResumeLoader) Text() string {
	l.once.Do(func() {
		l.text = l.load()
	})
	return l.text
}

// Len reports the cached text length in characters.
func (l *ResumeLoader) Len() int {
	return utf8.RuneCountInString(l.Text())
}

func (l *ResumeLoader) Path() string {
	return l.path
}

func (l *ResumeLoader) load() string {
	if _, err := os.Stat(l.path); err != nil {
		log.Printf("⚠️  Resume not found at %s, continuing without it\n", l.path)
		return ""
	}

	pages, err := l.parser.ExtractPages(l.path)
	if err != nil {
		log.Printf("⚠️  Failed to extract resume text: %v\n", err)
		return ""
	}

	text := strings.TrimSpace(truncateRunes(strings.Join(pages, "\n"), MaxResumeChars))
	log.Printf("📄 Resume loaded: %d pages, %d characters\n", len(pages), utf8.RuneCountInString(text))

	return text
}

// truncateRunes keeps at most n characters of s without splitting a rune.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
