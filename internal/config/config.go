// Package config implements the process-wide encoding and binary-policy
// configuration spec.md §6 describes: the four-way encoding override
// resolution (system/inputs/stdin/outputs) and the binary-behavior
// selector.
package config

import (
	"net/url"

	"github.com/gorilla/schema"
	"github.com/sourcegraph/utext/internal/reader"
	"github.com/sourcegraph/utext/internal/unicodesvc"
)

// decoder mirrors cmd/searcher/search/search.go's package-level
// schema.Decoder: built once, configured once, reused across every
// request/parse.
var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Encodings holds the four overrides spec.md §6 names. Each is a name a
// converter can be opened for, or empty to mean "not configured".
type Encodings struct {
	System string `schema:"system"`
	Inputs string `schema:"inputs"`
	Stdin  string `schema:"stdin"`
	Outputs string `schema:"outputs"`
}

// ParseEncodings decodes an Encodings value out of URL query values, the
// same schema.Decoder.Decode call search.go's protocol layer uses to
// populate its request struct from r.Form.
func ParseEncodings(values url.Values) (Encodings, error) {
	var e Encodings
	if err := decoder.Decode(&e, values); err != nil {
		return Encodings{}, err
	}
	return e, nil
}

// ResolveStdin implements spec.md §6's resolution rule: stdin inherits
// from outputs if stdin is a terminal, otherwise from inputs.
func (e Encodings) ResolveStdin(stdinIsTerminal bool) string {
	if e.Stdin != "" {
		return e.Stdin
	}
	if stdinIsTerminal {
		return e.Outputs
	}
	return e.Inputs
}

// Validate attempts to open a converter for every non-empty override,
// returning the subset that are actually usable; an invalid name is a
// warning, not a fatal error — spec.md §6 says it is "rejected ... and
// ignored", not that configuration parsing aborts.
func (e Encodings) Validate() (valid Encodings, warnings []error) {
	check := func(name string) string {
		if name == "" {
			return ""
		}
		if _, err := unicodesvc.OpenConverter(name); err != nil {
			warnings = append(warnings, err)
			return ""
		}
		return name
	}
	return Encodings{
		System:  check(e.System),
		Inputs:  check(e.Inputs),
		Stdin:   check(e.Stdin),
		Outputs: check(e.Outputs),
	}, warnings
}

// BinaryBehavior is the three-value binary-file selector of spec.md §6.
type BinaryBehavior string

const (
	BehaviorBinary BinaryBehavior = "binary"
	BehaviorSkip   BinaryBehavior = "skip"
	BehaviorText   BinaryBehavior = "text"
)

// Policy converts the configured behavior into the reader package's
// BinaryPolicy, defaulting to skip (grep's default) for an unrecognized
// or empty value.
func (b BinaryBehavior) Policy() reader.BinaryPolicy {
	switch b {
	case BehaviorText:
		return reader.PolicyText
	case BehaviorBinary:
		return reader.PolicyBinary
	default:
		return reader.PolicySkip
	}
}
