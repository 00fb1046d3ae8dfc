package adapters

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mweston/tahoe-conditions/internal/models"
)

var fractionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s+of\s+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s+out\s+of\s+(\d+)`),
}

// ParseFraction parses counts like "5/10", "5 of 10", or "5 out of 10".
// Returns (nil, nil) when no fraction is found.
func ParseFraction(text string) (*int, *int) {
	if text == "" {
		return nil, nil
	}
	text = strings.TrimSpace(text)

	for _, pat := range fractionPatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			num, err1 := strconv.Atoi(m[1])
			den, err2 := strconv.Atoi(m[2])
			if err1 == nil && err2 == nil {
				return &num, &den
			}
		}
	}
	return nil, nil
}

var (
	inchRangePattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[-–]\s*(\d+(?:\.\d+)?)`)
	inchSinglePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:"|″|in\b|inches?\b)?`)
)

// ParseInches parses a measurement like `6"`, "6 in", "6 inches", or a
// range like `6-8"`, which is collapsed to its arithmetic mean. Returns
// nil for non-numeric input.
func ParseInches(text string) *float64 {
	if text == "" {
		return nil
	}
	text = strings.ToLower(strings.TrimSpace(text))

	if m := inchRangePattern.FindStringSubmatch(text); m != nil {
		low, err1 := strconv.ParseFloat(m[1], 64)
		high, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return models.Ptr((low + high) / 2)
		}
	}

	if m := inchSinglePattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &v
		}
	}
	return nil
}

var (
	negativeStatusPhrases = []string{"not operating", "closed", "not open"}
	positiveStatusWords   = []string{"open", "yes", "operating"}
)

// ParseBoolStatus classifies open/closed status text. Negative phrases
// are checked first: "not open" must never classify as open.
func ParseBoolStatus(text string) *bool {
	if text == "" {
		return nil
	}
	text = strings.ToLower(strings.TrimSpace(text))

	if containsAny(text, negativeStatusPhrases...) {
		return models.Ptr(false)
	}
	if containsAny(text, positiveStatusWords...) {
		return models.Ptr(true)
	}
	return nil
}

// CleanText collapses all runs of whitespace to single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func containsAny(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// pageText extracts whitespace-normalized visible text from markup,
// stripping script, style, and noscript content first. Unparseable
// markup falls back to the raw input so pattern matching still gets a
// chance.
func pageText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return CleanText(html)
	}
	doc.Find("script, style, noscript").Remove()
	return CleanText(doc.Text())
}

// pageLines is like pageText but preserves line breaks between block
// text nodes, for adapters that match label/status pairs across lines.
func pageLines(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("script, style, noscript").Remove()

	var sb strings.Builder
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// findFloat tries patterns in priority order and returns the first
// capture parsed as a float.
func findFloat(text string, patterns ...*regexp.Regexp) *float64 {
	for _, pat := range patterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return &v
			}
		}
	}
	return nil
}

// findRangeAvg matches a pattern whose first capture is required and
// second optional; two captures average, one passes through.
func findRangeAvg(text string, pat *regexp.Regexp) *float64 {
	m := pat.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	low, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	if len(m) > 2 && m[2] != "" {
		if high, err := strconv.ParseFloat(m[2], 64); err == nil {
			return models.Ptr((low + high) / 2)
		}
	}
	return &low
}

// atoiPair converts two already-matched digit captures.
func atoiPair(a, b string) (*int, *int) {
	open, err1 := strconv.Atoi(a)
	total, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil {
		return nil, nil
	}
	return &open, &total
}

func parseFloatPtr(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// setIntFromAny assigns dst from a decoded-JSON value when it is a
// number, leaving dst untouched otherwise.
func setIntFromAny(dst **int, v any) {
	if f, ok := v.(float64); ok {
		*dst = models.Ptr(int(f))
	}
}

// setFloatFromAny assigns dst from a decoded-JSON number or numeric
// string, leaving dst untouched otherwise.
func setFloatFromAny(dst **float64, v any) {
	switch t := v.(type) {
	case float64:
		*dst = &t
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			*dst = &f
		}
	}
}

// findCountPair tries patterns in priority order; a two-capture match
// yields (open, total), a one-capture match yields an open count with
// unknown total.
func findCountPair(text string, patterns ...*regexp.Regexp) (*int, *int) {
	for _, pat := range patterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		open, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if len(m) > 2 && m[2] != "" {
			if total, err := strconv.Atoi(m[2]); err == nil {
				return &open, &total
			}
		}
		return &open, nil
	}
	return nil, nil
}
