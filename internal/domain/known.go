package domain

// knownCompanies maps normalized name fragments to canonical domains.
// Checked before any network strategy; containment of a key in the
// normalized name counts as a match.
var knownCompanies = map[string]string{
	"microsoft":  "microsoft.com",
	"google":     "google.com",
	"alphabet":   "abc.xyz",
	"apple":      "apple.com",
	"amazon":     "amazon.com",
	"meta":       "meta.com",
	"facebook":   "facebook.com",
	"netflix":    "netflix.com",
	"tesla":      "tesla.com",
	"openai":     "openai.com",
	"anthropic":  "anthropic.com",
	"salesforce": "salesforce.com",
	"oracle":     "oracle.com",
	"ibm":        "ibm.com",
	"intel":      "intel.com",
	"nvidia":     "nvidia.com",
	"adobe":      "adobe.com",
	"paypal":     "paypal.com",
	"stripe":     "stripe.com",
	"uber":       "uber.com",
	"lyft":       "lyft.com",
	"airbnb":     "airbnb.com",
	"spotify":    "spotify.com",
	"linkedin":   "linkedin.com",
	"twitter":    "x.com",
	"snapchat":   "snap.com",
	"zoom":       "zoom.us",
	"slack":      "slack.com",
	"shopify":    "shopify.com",
	"atlassian":  "atlassian.com",
	"acme":       "acme.com",
}
