// Package rules evaluates window-rule configuration: a JSONC file
// matching new views by app-id/title regex to a set of policy
// overrides the host applies when mapping them.
// The core view/views/grab packages never consult rules directly —
// this is host policy, not a core invariant.
package rules

import (
	"encoding/json"
	"fmt"
	"regexp"

	"viewcore/jsonc"
	"viewcore/view"
)

// RuleConfig is the on-disk JSONC shape of one rule.
type RuleConfig struct {
	AppID            string `json:"app-id"`
	Title            string `json:"title"`
	ServerDecoration *bool  `json:"server-decoration"`
	FocusMode        string `json:"focus-mode"`
	AlwaysOnTop      *bool  `json:"always-on-top"`
	SkipTaskbar      *bool  `json:"skip-taskbar"`
	Continue         bool   `json:"continue"`
}

// Rule is one compiled window rule. A nil field means the rule does
// not override that attribute.
type Rule struct {
	AppID            *regexp.Regexp
	Title            *regexp.Regexp
	ServerDecoration *bool
	FocusMode        *view.ViewFocusMode
	AlwaysOnTop      *bool
	SkipTaskbar      *bool
	Continue         bool
}

func parseFocusMode(s string) (view.ViewFocusMode, error) {
	switch s {
	case "never":
		return view.FocusNever, nil
	case "unlikely":
		return view.FocusUnlikely, nil
	case "likely":
		return view.FocusLikely, nil
	case "always":
		return view.FocusAlways, nil
	default:
		return 0, fmt.Errorf("rules: unknown focus-mode %q", s)
	}
}

// Rules is an ordered list of compiled window rules, evaluated
// first-match-wins unless a matching rule sets Continue.
type Rules []Rule

// Load reads and compiles a JSONC window-rule file.
func Load(data []byte) (Rules, error) {
	clean, err := jsonc.Sanitize(data)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	var configs []RuleConfig
	if err := json.Unmarshal(clean, &configs); err != nil {
		return nil, fmt.Errorf("rules: error unmarshaling rules: %w", err)
	}
	out := make(Rules, len(configs))
	for i, c := range configs {
		r := Rule{ServerDecoration: c.ServerDecoration, AlwaysOnTop: c.AlwaysOnTop, SkipTaskbar: c.SkipTaskbar, Continue: c.Continue}
		if c.AppID != "" {
			r.AppID, err = regexp.Compile(c.AppID)
			if err != nil {
				return nil, fmt.Errorf("rules: error compiling app-id regex %q: %w", c.AppID, err)
			}
		}
		if c.Title != "" {
			r.Title, err = regexp.Compile(c.Title)
			if err != nil {
				return nil, fmt.Errorf("rules: error compiling title regex %q: %w", c.Title, err)
			}
		}
		if c.FocusMode != "" {
			mode, err := parseFocusMode(c.FocusMode)
			if err != nil {
				return nil, err
			}
			r.FocusMode = &mode
		}
		out[i] = r
	}
	return out, nil
}

func (r Rule) matches(appID, title string) bool {
	if r.AppID != nil && !r.AppID.MatchString(appID) {
		return false
	}
	if r.Title != nil && !r.Title.MatchString(title) {
		return false
	}
	return r.AppID != nil || r.Title != nil
}

// Match evaluates rs against (appID, title), merging every matching
// rule in order until one matches without setting Continue. Later
// matches only override fields left unset by earlier ones.
func (rs Rules) Match(appID, title string) Rule {
	var merged Rule
	for _, r := range rs {
		if !r.matches(appID, title) {
			continue
		}
		if merged.ServerDecoration == nil {
			merged.ServerDecoration = r.ServerDecoration
		}
		if merged.FocusMode == nil {
			merged.FocusMode = r.FocusMode
		}
		if merged.AlwaysOnTop == nil {
			merged.AlwaysOnTop = r.AlwaysOnTop
		}
		if merged.SkipTaskbar == nil {
			merged.SkipTaskbar = r.SkipTaskbar
		}
		if !r.Continue {
			break
		}
	}
	return merged
}
