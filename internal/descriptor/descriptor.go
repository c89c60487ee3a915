// Package descriptor cleans raw bank-statement descriptors into short,
// human-readable labels.
//
// Cleaning is a best-effort heuristic: every step takes and returns a string,
// and Clean never returns an empty result.
package descriptor

import "strings"

// Placeholder is returned for an empty descriptor.
const Placeholder = "Sem Descrição"

// Step is one transformation in the cleaning pipeline.
type Step func(string) string

// Pipeline applies steps in order, each to the output of the previous one.
type Pipeline []Step

// Run applies every step.
func (p Pipeline) Run(s string) string {
	for _, step := range p {
		s = step(s)
	}
	return s
}

// DefaultPipeline is the ordered set of steps used by Clean.
var DefaultPipeline = Pipeline{
	StripPrefix,
	PickUsefulPart,
	RemoveParenthesized,
	RemoveBankCodes,
	RemoveLongNumbers,
	TrimEdges,
	CollapseSpaces,
	TitleCase,
	LowerConnectors,
}

// maxPasses bounds the fixed-point loop in Clean.
const maxPasses = 4

// Clean normalizes a raw descriptor. An empty input yields Placeholder; if
// cleaning removes everything, raw is returned unmodified.
//
// The pipeline is rerun until its output stops changing, so Clean(Clean(s))
// equals Clean(s) even when one step uncovers work for an earlier one, as
// when picking "Pix enviado para Ana" out of "123 - Pix enviado para Ana".
func Clean(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Placeholder
	}
	text = strings.TrimSpace(DefaultPipeline.Run(text))
	if text == "" {
		return raw
	}
	for range maxPasses {
		next := strings.TrimSpace(DefaultPipeline.Run(text))
		if next == "" || next == text {
			break
		}
		text = next
	}
	return text
}
