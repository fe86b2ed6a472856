package enrich

// scoreLead aggregates all signals into one 0-100 lead score. Additive,
// per-component caps, final sum clamped.
func scoreLead(p LeadProfile) int {
	score := 0
	if p.Company != "" {
		score += 20
	}
	if p.Domain != "" {
		score += 20
	}
	if p.JobTitle != "" {
		score += 10
	}
	if p.Location != "" {
		score += 5
	}
	if p.Industry != "" {
		score += 5
	}

	best := 0
	distinct := 0
	fromSnippet := false
	for _, e := range p.Emails {
		distinct++
		if e.Score > best {
			best = e.Score
		}
		if e.Source == SourceSearchSnippet {
			fromSnippet = true
		}
	}
	if best > 40 {
		best = 40
	}
	score += best
	if distinct > 1 {
		score += 5
	}

	if len(p.Phones) > 0 {
		score += 20
	}
	if len(p.Phones) > 1 {
		score += 5
	}
	for _, num := range p.Phones {
		if num.Mobile {
			score += 10
			break
		}
	}

	if fromSnippet {
		score += 15
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
