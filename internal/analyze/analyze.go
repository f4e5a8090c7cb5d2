// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze profiles raw document text: it detects the document
// category from keyword frequency and estimates how table-heavy a page
// is. Both signals feed document metadata only; the structuring pipeline
// does not depend on them.
package analyze

import (
	"regexp"
	"strings"

	"github.com/pdiddy/docstruct/pkg/types"
)

// typeKeywords maps each document category to the vocabulary that
// identifies it. Detection scores one point per keyword found in the
// lowercased text; the highest score wins.
var typeKeywords = map[types.DocType][]string{
	types.DocFinancial: {
		"balance sheet", "income statement", "profit", "loss", "revenue",
		"expense", "asset", "liability", "cash flow", "financial statement",
		"quarterly report", "annual report", "10-k", "10-q",
	},
	types.DocInsurance: {
		"policy", "coverage", "deductible", "premium", "benefit", "claim",
		"insurance", "copay", "coinsurance", "out-of-pocket", "network",
	},
	types.DocLegal: {
		"agreement", "contract", "whereas", "herein", "thereof", "pursuant",
		"obligation", "party", "terms and conditions", "governing law",
	},
	types.DocMedical: {
		"patient", "diagnosis", "treatment", "medication", "prescription",
		"symptoms", "medical history", "lab results", "vital signs",
	},
	types.DocTechnical: {
		"specification", "requirement", "implementation", "architecture",
		"api", "endpoint", "configuration", "parameter", "function",
	},
	types.DocInvoice: {
		"invoice", "bill", "payment due", "subtotal", "tax", "total",
		"item", "quantity", "unit price", "po number", "invoice number",
	},
	types.DocReport: {
		"executive summary", "findings", "recommendations", "analysis",
		"methodology", "conclusion", "results", "data", "statistics",
	},
}

// tablePatterns are layout signals that suggest tabular content.
var tablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s{2,}\S+\s{2,}\S+`),
	regexp.MustCompile(`\|.*\|.*\|`),
	regexp.MustCompile(`\t.*\t`),
	regexp.MustCompile(`(?m)^\s*\d+\.\d+\s+.*$`),
}

// DetectType scores the text against every category's keyword set and
// returns the best match with its score. Text matching no category is
// classified general with score 0.
func DetectType(text string) (types.DocType, int) {
	lower := strings.ToLower(text)

	best, bestScore := types.DocGeneral, 0
	for docType, keywords := range typeKeywords {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		// Break score ties by name so detection is deterministic.
		if score > bestScore || (score == bestScore && score > 0 && docType < best) {
			best, bestScore = docType, score
		}
	}
	return best, bestScore
}

// Complexity grades how table-heavy a page of text appears.
type Complexity int

const (
	ComplexityNone Complexity = iota
	ComplexityModerate
	ComplexityHigh
)

func (c Complexity) String() string {
	switch c {
	case ComplexityHigh:
		return "high"
	case ComplexityModerate:
		return "moderate"
	default:
		return "none"
	}
}

// TableComplexity counts table layout indicators across the text and
// grades the result: more than 10 matches is high, more than 5 moderate.
func TableComplexity(text string) Complexity {
	indicators := 0
	for _, p := range tablePatterns {
		indicators += len(p.FindAllString(text, -1))
	}
	switch {
	case indicators > 10:
		return ComplexityHigh
	case indicators > 5:
		return ComplexityModerate
	default:
		return ComplexityNone
	}
}
