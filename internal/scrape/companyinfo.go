package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractCompanyInfo reads the homepage's self-description from meta tags,
// falling back to the document title.
func extractCompanyInfo(doc *goquery.Document) CompanyInfo {
	info := CompanyInfo{}

	if v, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		info.Name = strings.TrimSpace(v)
	}
	if info.Name == "" {
		if v, ok := doc.Find(`meta[name="application-name"]`).Attr("content"); ok {
			info.Name = strings.TrimSpace(v)
		}
	}
	if info.Name == "" {
		title := strings.TrimSpace(doc.Find("title").First().Text())
		// Titles routinely carry a tagline after a separator.
		for _, sep := range []string{" | ", " - ", " — "} {
			if i := strings.Index(title, sep); i > 0 {
				title = title[:i]
				break
			}
		}
		info.Name = title
	}

	if v, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		info.Description = strings.TrimSpace(v)
	}
	if info.Description == "" {
		if v, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
			info.Description = strings.TrimSpace(v)
		}
	}

	return info
}
