package email

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/leadgrid/enricher/internal/cache"
	"github.com/leadgrid/enricher/internal/metrics"
)

// ValidationResult is the scored outcome for one address. IsValid always
// implies Score >= 50.
type ValidationResult struct {
	Email    string         `json:"email"`
	IsValid  bool           `json:"is_valid"`
	Score    int            `json:"score"`
	DNSValid bool           `json:"dns_valid"`
	Details  map[string]any `json:"details"`
}

const (
	validThreshold     = 50
	syntaxPoints       = 40
	mxPoints           = 40
	noAnswerPoints     = 10
	fallbackBasicScore = 30
)

var emailSyntax = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// SyntaxOK performs the structural check: RFC-shaped local@domain with no
// malformed dot placement.
func SyntaxOK(addr string) bool {
	if !emailSyntax.MatchString(addr) {
		return false
	}
	local, _, _ := strings.Cut(addr, "@")
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(addr, "..") {
		return false
	}
	return true
}

// Validator scores candidate emails via syntax, DNS, and optionally an
// external batch verification API. Results are cached under email_<addr>.
type Validator struct {
	cache    *cache.Cache
	mx       MXResolver
	verifier *BatchVerifier
	logger   *zap.Logger
}

// NewValidator wires a Validator. The verifier may be nil, in which case
// batch validation always uses local scoring.
func NewValidator(c *cache.Cache, mx MXResolver, verifier *BatchVerifier, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{cache: c, mx: mx, verifier: verifier, logger: logger}
}

// Validate scores a single address locally (syntax + MX).
func (v *Validator) Validate(ctx context.Context, addr string) ValidationResult {
	key := "email_" + addr
	var cached ValidationResult
	if v.cache != nil && v.cache.Get(ctx, key, &cached) && cached.Email == addr {
		return cached
	}

	res := v.validateLocal(ctx, addr)
	v.store(ctx, key, res)
	return res
}

func (v *Validator) validateLocal(ctx context.Context, addr string) ValidationResult {
	metrics.EmailsValidated.Inc()
	res := ValidationResult{Email: addr, Details: map[string]any{}}

	if !SyntaxOK(addr) {
		res.Details["error"] = "invalid syntax"
		return res
	}
	res.Score += syntaxPoints
	res.Details["syntax"] = true

	_, domain, _ := strings.Cut(addr, "@")
	if v.mx != nil {
		count, err := v.mx.LookupMX(ctx, domain)
		switch {
		case err == nil:
			res.Score += mxPoints
			res.DNSValid = true
			// float64 keeps cached and fresh results identical after the
			// JSON round trip through the cache.
			res.Details["mx_records"] = float64(count)
		case errors.Is(err, ErrNoAnswer):
			res.Score += noAnswerPoints
			res.Details["mx_records"] = float64(0)
		case errors.Is(err, ErrNoDomain):
			res.Details["domain_exists"] = false
		default:
			v.logger.Debug("mx lookup failed", zap.String("domain", domain), zap.Error(err))
		}
	}

	res.IsValid = res.Score >= validThreshold
	return res
}

// ValidateBatch scores many addresses in one pass, preferring the external
// verification API. On API failure every address falls back to local
// scoring; a missing per-email result falls back to a basic format check
// with a low fixed score.
func (v *Validator) ValidateBatch(ctx context.Context, addrs []string) []ValidationResult {
	if len(addrs) == 0 {
		return nil
	}
	if v.verifier == nil {
		return v.validateAllLocal(ctx, addrs)
	}

	apiResults, err := v.verifier.Verify(ctx, addrs)
	if err != nil {
		v.logger.Warn("batch verifier unavailable, falling back to local scoring", zap.Error(err))
		return v.validateAllLocal(ctx, addrs)
	}

	out := make([]ValidationResult, 0, len(addrs))
	for _, addr := range addrs {
		api, ok := apiResults[addr]
		var res ValidationResult
		if !ok {
			res = ValidationResult{
				Email:   addr,
				Details: map[string]any{"fallback": "basic_format"},
			}
			if SyntaxOK(addr) {
				res.Score = fallbackBasicScore
			}
			res.IsValid = false
		} else {
			res = ValidationResult{
				Email:    addr,
				Score:    api.Score,
				DNSValid: api.Validations["mx_records"],
				IsValid:  api.Status == "VALID" && api.Score >= validThreshold,
				Details:  map[string]any{"status": api.Status},
			}
			for k, val := range api.Validations {
				res.Details[k] = val
			}
		}
		v.store(ctx, "email_"+addr, res)
		out = append(out, res)
	}
	return out
}

func (v *Validator) validateAllLocal(ctx context.Context, addrs []string) []ValidationResult {
	out := make([]ValidationResult, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, v.Validate(ctx, addr))
	}
	return out
}

func (v *Validator) store(ctx context.Context, key string, res ValidationResult) {
	if v.cache == nil {
		return
	}
	if err := v.cache.Set(ctx, key, res); err != nil {
		v.logger.Warn("cache validation result", zap.Error(err))
	}
}
