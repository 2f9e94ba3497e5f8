package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed landing page ready for locator evaluation.
type Document struct {
	URL  string
	HTML string

	doc  *goquery.Document
	text string
}

// NewDocument parses rawHTML. Script-like elements are dropped so that
// text-based locators only see what a visitor would read.
func NewDocument(pageURL, rawHTML string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	return &Document{
		URL:  pageURL,
		HTML: rawHTML,
		doc:  doc,
		text: collapseSpace(doc.Find("body").Text()),
	}, nil
}

// VisibleText returns the whitespace-collapsed text of the body.
func (d *Document) VisibleText() string {
	return d.text
}

func (d *Document) find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// textOf prefers an explicit content attribute (meta tags) over element text.
func textOf(s *goquery.Selection) string {
	if content, ok := s.Attr("content"); ok {
		if text := collapseSpace(content); text != "" {
			return text
		}
	}
	return collapseSpace(s.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
