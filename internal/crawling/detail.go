package crawling

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/minjae/job-coach/internal/fetch"
	"github.com/minjae/job-coach/internal/storage"
)

// FetchDetail fetches a posting's detail iframe and persists the posting
// text and, when present, the posting image into the company store.
// Writes overwrite any earlier capture for the same company.
func (c *Crawler) FetchDetail(ctx context.Context, detailURL, company string, store *storage.CompanyStore) error {
	recIdx, err := extractRecIdx(detailURL)
	if err != nil {
		return err
	}

	iframeURL := fmt.Sprintf("%s/zf_user/jobs/relay/view-detail?rec_idx=%s&rec_seq=0", c.BaseURL, recIdx)
	result, err := fetch.URL(ctx, iframeURL, c.Options)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML()))
	if err != nil {
		return &ParseError{URL: iframeURL, Message: "failed to parse HTML"}
	}

	text := collectTableText(doc)
	if c.UseBrowser && fetch.ShouldUseBrowser(text) {
		html, berr := fetch.BrowserSimple(ctx, iframeURL)
		if berr != nil {
			log.Printf("[crawling] browser fallback failed for %s: %v", iframeURL, berr)
		} else if rendered, perr := goquery.NewDocumentFromReader(strings.NewReader(html)); perr == nil {
			doc = rendered
			text = collectTableText(doc)
		}
	}

	if err := store.WriteText(company, text); err != nil {
		return err
	}

	// Posting images are optional; many postings are text-only.
	if src, ok := doc.Find("img").First().Attr("src"); ok && src != "" {
		if err := c.saveImage(ctx, src, company, store); err != nil {
			log.Printf("[crawling] image download failed for %s: %v", company, err)
		}
	}

	return nil
}

// saveImage downloads the posting image and stores it for the company.
func (c *Crawler) saveImage(ctx context.Context, src, company string, store *storage.CompanyStore) error {
	imgURL := c.normalizeImageURL(src)
	result, err := fetch.URL(ctx, imgURL, c.Options)
	if err != nil {
		return err
	}
	return store.WriteImage(company, result.Body)
}

// normalizeImageURL repairs the image source values the board emits:
// protocol-relative URLs containing "www." and site-relative "/recruit"
// paths. Anything else passes through unchanged.
func (c *Crawler) normalizeImageURL(src string) string {
	if idx := strings.Index(src, "www."); idx >= 0 {
		return "https://" + src[idx:]
	}
	if idx := strings.Index(src, "/recruit"); idx >= 0 {
		return c.BaseURL + src[idx:]
	}
	return src
}

// collectTableText joins the text of every table cell in the detail
// iframe, one cell per line. Empty cells become separators so adjacent
// sections stay apart.
func collectTableText(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("td").Each(func(_ int, td *goquery.Selection) {
		text := strings.TrimSpace(td.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	})
	return sb.String()
}

// extractRecIdx pulls the record id out of a posting detail URL.
func extractRecIdx(detailURL string) (string, error) {
	_, rest, ok := strings.Cut(detailURL, "rec_idx=")
	if !ok {
		return "", &DetailURLError{URL: detailURL}
	}
	recIdx, _, _ := strings.Cut(rest, "&")
	if recIdx == "" {
		return "", &DetailURLError{URL: detailURL}
	}
	return recIdx, nil
}
