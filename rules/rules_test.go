package rules

import (
	"regexp"
	"testing"

	"viewcore/view"
)

func TestLoadStripsCommentsAndCompilesRegex(t *testing.T) {
	data := []byte(`[
		// a terminal always floats and stays on top
		{"app-id": "^foot$", "always-on-top": true, "focus-mode": "always"},
		{"title": ".*private.*", "skip-taskbar": true}
	]`)
	rs, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("Load returned %d rules, want 2", len(rs))
	}
	if rs[0].AppID == nil || !rs[0].AppID.MatchString("foot") {
		t.Error("first rule's app-id regex did not compile/match as expected")
	}
}

func TestMatchFirstRuleWinsWithoutContinue(t *testing.T) {
	rs := Rules{
		{AppID: mustCompile("^foot$"), AlwaysOnTop: boolPtr(true)},
		{AppID: mustCompile("^foot$"), SkipTaskbar: boolPtr(true)},
	}
	got := rs.Match("foot", "")
	if got.AlwaysOnTop == nil || !*got.AlwaysOnTop {
		t.Error("first matching rule's AlwaysOnTop must apply")
	}
	if got.SkipTaskbar != nil {
		t.Error("without Continue, the second rule must not be evaluated")
	}
}

func TestMatchContinueMergesLaterRules(t *testing.T) {
	rs := Rules{
		{AppID: mustCompile("^foot$"), AlwaysOnTop: boolPtr(true), Continue: true},
		{AppID: mustCompile("^foot$"), SkipTaskbar: boolPtr(true)},
	}
	got := rs.Match("foot", "")
	if got.AlwaysOnTop == nil || !*got.AlwaysOnTop {
		t.Error("AlwaysOnTop from the first rule must survive the merge")
	}
	if got.SkipTaskbar == nil || !*got.SkipTaskbar {
		t.Error("Continue must let the second rule's SkipTaskbar apply")
	}
}

func TestMatchEarlierFieldWinsOverLaterWhenBothSet(t *testing.T) {
	always := view.FocusAlways
	likely := view.FocusLikely
	rs := Rules{
		{AppID: mustCompile("^foot$"), FocusMode: &always, Continue: true},
		{AppID: mustCompile("^foot$"), FocusMode: &likely},
	}
	got := rs.Match("foot", "")
	if got.FocusMode == nil || *got.FocusMode != view.FocusAlways {
		t.Error("an earlier rule's explicit field must not be overridden by a later match")
	}
}

func TestMatchNoRuleMatchesReturnsZeroRule(t *testing.T) {
	rs := Rules{{AppID: mustCompile("^foot$"), AlwaysOnTop: boolPtr(true)}}
	got := rs.Match("alacritty", "")
	if got.AlwaysOnTop != nil {
		t.Error("a non-matching rule must not contribute any override")
	}
}

func mustCompile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

func boolPtr(b bool) *bool { return &b }
