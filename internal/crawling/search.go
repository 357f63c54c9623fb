package crawling

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/minjae/job-coach/internal/fetch"
	"github.com/minjae/job-coach/internal/types"
)

// DefaultBaseURL is the job board origin.
const DefaultBaseURL = "https://www.saramin.co.kr"

// searchPath is the job-category search endpoint. The keyword is appended
// as the searchword parameter.
const searchPath = "/zf_user/jobs/list/job-category"

// Crawler scrapes the job board.
type Crawler struct {
	// BaseURL is the board origin; overridable for tests.
	BaseURL string
	// Options configures HTTP fetching.
	Options *fetch.Options
	// UseBrowser enables headless rendering when a detail page has no
	// static table content.
	UseBrowser bool
}

// New creates a crawler against the production job board.
func New() *Crawler {
	return &Crawler{
		BaseURL: DefaultBaseURL,
		Options: fetch.DefaultOptions(),
	}
}

// Search scrapes the board's search results for postings whose company
// name contains the query. The returned slice preserves page order; an
// empty result is not an error.
func (c *Crawler) Search(ctx context.Context, company string) ([]types.JobPosting, error) {
	result, err := fetch.URL(ctx, c.searchURL(company), c.Options)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML()))
	if err != nil {
		return nil, &ParseError{URL: result.URL, Message: "failed to parse HTML"}
	}

	list := doc.Find("div.common_recruilt_list div.list_body")
	if list.Length() == 0 {
		return nil, &ParseError{URL: result.URL, Message: "recruitment list not found"}
	}

	var postings []types.JobPosting
	list.Find("div.box_item").Each(func(_ int, item *goquery.Selection) {
		companyNode := item.Find("div.company_nm").First()
		name := companyNode.Find("a").First()
		if name.Length() == 0 {
			name = companyNode.Find("span").First()
		}

		titleLink := item.Find("div.notification_info a.str_tit").First()
		href, ok := titleLink.Attr("href")
		if !ok {
			return
		}

		companyName := strings.TrimSpace(name.Text())
		if !strings.Contains(companyName, company) {
			return
		}

		posting := types.JobPosting{
			Name: companyName,
			Job:  strings.TrimSpace(titleLink.Text()),
			URL:  c.BaseURL + href,
		}

		// The info block lists place, career and education in order.
		attrs := item.Find("div.recruit_info p")
		attrs.Each(func(i int, p *goquery.Selection) {
			text := strings.TrimSpace(p.Text())
			switch i {
			case 0:
				posting.Place = text
			case 1:
				posting.Career = text
			case 2:
				posting.Education = text
			}
		})

		postings = append(postings, posting)
	})

	return postings, nil
}

func (c *Crawler) searchURL(company string) string {
	params := url.Values{}
	params.Set("cat_mcls", "2")
	params.Set("searchType", "search")
	params.Set("searchword", company)
	params.Set("search_optional_item", "y")
	params.Set("search_done", "y")
	params.Set("panel_count", "y")
	params.Set("preview", "y")
	return c.BaseURL + searchPath + "?" + params.Encode()
}
