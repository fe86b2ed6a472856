package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const contactPage = `<!DOCTYPE html><html><head><title>Acme | Rockets</title></head><body>
<a href="mailto:sales@acme.test?subject=hi">Email sales</a>
<p>Reach our support team at support@acme.test or call (415) 555-0123.</p>
<a href="https://www.linkedin.com/company/acme">LinkedIn</a>
<a href="https://acme.test/blog">Blog</a>
<form action="/contact-submit" method="post" id="contact-form">
  <input name="name"><input name="email"><textarea name="message"></textarea>
</form>
<form action="/newsletter" id="nl"><input name="email"></form>
<h2>Get in touch</h2>
<p>Office line: 415-555-0199. Write to office@acme.test.</p>
<h2>Unrelated heading</h2>
<p>hidden@acme.test should still come from the page scan.</p>
</body></html>`

func TestParsePageExtractsArtifacts(t *testing.T) {
	t.Parallel()
	acc := newAccumulator()
	acc.parsePage("https://acme.test/contact", docFrom(t, contactPage))

	require.Contains(t, acc.emailSources, "sales@acme.test")
	require.Contains(t, acc.emailSources, "support@acme.test")
	require.Contains(t, acc.emailSources, "office@acme.test")
	require.Contains(t, acc.emailSources, "hidden@acme.test")
	require.Equal(t, []string{"sales@acme.test"}, acc.mailto)

	require.Contains(t, acc.phones, "(415) 555-0123")
	require.Contains(t, acc.phones, "415-555-0199")

	require.Len(t, acc.socials, 1)
	require.Contains(t, acc.socials[0], "linkedin.com")

	// The newsletter form lacks contact-intent keywords in action/id/class.
	require.Len(t, acc.forms, 1)
	require.Equal(t, "https://acme.test/contact-submit", acc.forms[0].Action)
	require.Equal(t, "POST", acc.forms[0].Method)
	require.Equal(t, []string{"name", "email", "message"}, acc.forms[0].Fields)
}

func TestScoredEmails(t *testing.T) {
	t.Parallel()
	acc := newAccumulator()
	acc.addEmail("info@acme.test", "https://acme.test")
	acc.addEmail("info@acme.test", "https://acme.test/about")
	acc.addEmail("sales@acme.test", "https://acme.test/contact")

	byAddr := map[string]ScrapedEmail{}
	for _, e := range acc.scoredEmails() {
		byAddr[e.Address] = e
	}

	// Two plain source pages: 10 each, no contact bonus.
	require.Equal(t, 20, byAddr["info@acme.test"].Score)
	// One contact-page source: 10 + 20 bonus.
	require.Equal(t, 30, byAddr["sales@acme.test"].Score)
}

func TestScoredEmailsCapped(t *testing.T) {
	t.Parallel()
	acc := newAccumulator()
	for i := 0; i < 20; i++ {
		acc.addEmail("info@acme.test", "https://acme.test/contact/"+strings.Repeat("x", i+1))
	}
	emails := acc.scoredEmails()
	require.Len(t, emails, 1)
	require.Equal(t, 100, emails[0].Score)
}

func TestAddEmailRejectsMalformed(t *testing.T) {
	t.Parallel()
	acc := newAccumulator()
	acc.addEmail("not-an-email", "https://acme.test")
	acc.addEmail("", "https://acme.test")
	require.Empty(t, acc.emailSources)
}

func TestPlatformOf(t *testing.T) {
	t.Parallel()
	require.Equal(t, "linkedin.com", platformOf("https://www.linkedin.com/in/someone"))
	require.Equal(t, "x.com", platformOf("https://x.com/acme"))
	require.Equal(t, "", platformOf("https://acme.test/about"))
	require.Equal(t, "", platformOf("https://notlinkedin.company"))
}

func TestIsSocialPlatform(t *testing.T) {
	t.Parallel()
	require.True(t, isSocialPlatform("linkedin.com"))
	require.True(t, isSocialPlatform("www.facebook.com"))
	require.False(t, isSocialPlatform("acme.test"))
}

func TestExtractCompanyInfo(t *testing.T) {
	t.Parallel()
	doc := docFrom(t, `<html><head>
		<title>Acme | Rockets</title>
		<meta property="og:site_name" content="Acme Corporation">
		<meta name="description" content="Acme builds rockets.">
	</head><body></body></html>`)
	info := extractCompanyInfo(doc)
	require.Equal(t, "Acme Corporation", info.Name)
	require.Equal(t, "Acme builds rockets.", info.Description)
}

func TestExtractCompanyInfoTitleFallback(t *testing.T) {
	t.Parallel()
	doc := docFrom(t, `<html><head><title>Acme | Rockets since 1949</title></head><body></body></html>`)
	info := extractCompanyInfo(doc)
	require.Equal(t, "Acme", info.Name)
	require.Empty(t, info.Description)
}
