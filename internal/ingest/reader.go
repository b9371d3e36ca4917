package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/qepting91/jamcomments/internal/domain"
)

// Permalinks are site-relative paths
var permalinkRegex = regexp.MustCompile(`^/[^\s]*$`)

// LoadPages reads "permalink,output" rows. The header is skipped and invalid rows are dropped.
func LoadPages(path string) ([]domain.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPages(f)
}

func ReadPages(src io.Reader) ([]domain.Page, error) {
	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(src))
	r.FieldsPerRecord = -1

	var pages []domain.Page
	line := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line++
				continue
			}
			return nil, err
		}
		line++
		if line == 1 {
			continue // Skip header
		}

		// Validation (Fail-Soft)
		permalink := strings.TrimSpace(record[0])
		if !permalinkRegex.MatchString(permalink) {
			continue
		}

		page := domain.Page{Permalink: permalink}
		if len(record) > 1 {
			page.Output = strings.TrimSpace(record[1])
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		_ = br.UnreadRune()
	}
	return br
}
