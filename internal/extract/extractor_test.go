package extract

import (
	"reflect"
	"testing"
)

func assertList(t *testing.T, field string, got []string, want []string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%s = %v, want %v", field, got, want)
	}
}

func TestExtract_MarkedLines(t *testing.T) {
	transcript := "Decision: We will extend the deadline by two weeks.\n" +
		"Action: Sarah will update the documentation.\n" +
		"Risk: There might be budget overruns.\n"

	res := Extract(transcript)

	assertList(t, "decisions", res.Decisions, []string{"We will extend the deadline by two weeks."})
	assertList(t, "action_items", res.ActionItems, []string{"Sarah will update the documentation."})
	assertList(t, "owners", res.Owners, []string{"Sarah"})
	assertList(t, "risks", res.Risks, []string{"There might be budget overruns."})
	if res.Summary == "" {
		t.Fatalf("summary must be non-empty for a non-blank transcript")
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	res := Extract("")

	if res.Summary != "" {
		t.Fatalf("summary = %q, want empty", res.Summary)
	}
	if res.Decisions == nil || res.ActionItems == nil || res.Owners == nil || res.Risks == nil {
		t.Fatalf("list fields must be non-nil empty slices")
	}
	assertList(t, "decisions", res.Decisions, nil)
	assertList(t, "action_items", res.ActionItems, nil)
	assertList(t, "owners", res.Owners, nil)
	assertList(t, "risks", res.Risks, nil)
}

func TestExtract_BlankOnlyInput(t *testing.T) {
	res := Extract("  \n\t\n   \r\n")
	if res.Summary != "" {
		t.Fatalf("summary = %q, want empty for all-blank input", res.Summary)
	}
	assertList(t, "decisions", res.Decisions, nil)
}

func TestExtract_Deterministic(t *testing.T) {
	transcript := "Kickoff for Q3 planning\nDecision: Ship in June.\nAction: Bob will draft the doc.\n"
	first := Extract(transcript)
	second := Extract(transcript)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extract is not deterministic: %v vs %v", first, second)
	}
}

func TestExtract_MarkerWithEmptyRemainder(t *testing.T) {
	res := Extract("Decision:")
	assertList(t, "decisions", res.Decisions, nil)
	if res.Summary == "" {
		t.Fatalf("summary must still be non-empty, line count is 1")
	}
}

func TestExtract_MidLineMarkerDoesNotMatch(t *testing.T) {
	res := Extract("This is not a Decision: really\nAlice will review the budget. Decision: Budget approved.")

	assertList(t, "decisions", res.Decisions, nil)
	// Owner inference is independent of marker anchoring.
	assertList(t, "owners", res.Owners, []string{"Alice"})
}

func TestExtract_SpeakerPrefixedMarker(t *testing.T) {
	res := Extract("Sarah: Decision: adopt the new rollout plan\nBob: Risk: vendor lock-in")

	assertList(t, "decisions", res.Decisions, []string{"adopt the new rollout plan"})
	assertList(t, "risks", res.Risks, []string{"vendor lock-in"})
}

func TestExtract_MarkerCaseInsensitive(t *testing.T) {
	res := Extract("DECISION: one\ndecision: two\nDeCiSiOn: three")
	assertList(t, "decisions", res.Decisions, []string{"one", "two", "three"})
}

func TestExtract_FirstMatchWins(t *testing.T) {
	// A decision line mentioning risk stays a decision only.
	res := Extract("Decision: accept the Risk: of slipping a week")
	assertList(t, "decisions", res.Decisions, []string{"accept the Risk: of slipping a week"})
	assertList(t, "risks", res.Risks, nil)
}

func TestExtract_OrderPreserved(t *testing.T) {
	transcript := "Risk: first risk\nDecision: first decision\nRisk: second risk\nDecision: second decision\n"
	res := Extract(transcript)
	assertList(t, "decisions", res.Decisions, []string{"first decision", "second decision"})
	assertList(t, "risks", res.Risks, []string{"first risk", "second risk"})
}

func TestExtract_OwnerDedup(t *testing.T) {
	transcript := "Sarah will update the docs.\nSarah will also file the ticket.\nBob will review.\nSarah will follow up."
	res := Extract(transcript)
	assertList(t, "owners", res.Owners, []string{"Sarah", "Bob"})
}

func TestExtract_OwnerStoplist(t *testing.T) {
	transcript := "We will ship on Friday.\nThe Team will regroup.\nSystem will restart nightly.\nCarol will own the rollout."
	res := Extract(transcript)
	assertList(t, "owners", res.Owners, []string{"Carol"})
}

func TestExtract_OwnerPunctuationAndShape(t *testing.T) {
	res := Extract("Maybe D'Angelo will take it.\nOtherwise Anne-Marie will own it.\nx will not.\nA will not either.\n42 will fail.")
	assertList(t, "owners", res.Owners, []string{"D'Angelo", "Anne-Marie"})
}

func TestExtract_LowercaseWordBeforeWillIgnored(t *testing.T) {
	res := Extract("the deploy will happen tonight")
	assertList(t, "owners", res.Owners, nil)
}

func TestExtract_CRLFAndCRLineEndings(t *testing.T) {
	crlf := Extract("Decision: a\r\nAction: Bob will do b\r\nRisk: c")
	cr := Extract("Decision: a\rAction: Bob will do b\rRisk: c")

	assertList(t, "decisions", crlf.Decisions, []string{"a"})
	assertList(t, "decisions", cr.Decisions, []string{"a"})
	assertList(t, "owners", crlf.Owners, []string{"Bob"})
	assertList(t, "owners", cr.Owners, []string{"Bob"})
}

func TestExtract_SummaryUsesFirstSubstantiveLine(t *testing.T) {
	res := Extract("Decision: ship it\nQuarterly planning kickoff\nmore discussion here")
	want := "Quarterly planning kickoff (3 lines, 1 decisions, 0 action items, 0 risks)"
	if res.Summary != want {
		t.Fatalf("summary = %q, want %q", res.Summary, want)
	}
}

func TestExtract_SummaryWithOnlyMarkerLines(t *testing.T) {
	res := Extract("Decision: ship it")
	want := "Meeting transcript (1 lines, 1 decisions, 0 action items, 0 risks)"
	if res.Summary != want {
		t.Fatalf("summary = %q, want %q", res.Summary, want)
	}
}

func TestClassify_SpeakerTokenRules(t *testing.T) {
	cases := []struct {
		line     string
		category string
		remains  string
	}{
		{"Decision: yes", markerDecision, "yes"},
		{"Sarah: Decision: yes", markerDecision, "yes"},
		{"The Decision: was made earlier", "", ""},
		{"we decided something: Decision: no", "", ""},
		{"risk: low disk space", markerRisk, "low disk space"},
	}
	for _, tc := range cases {
		cat, rem := classify(tc.line)
		if cat != tc.category || rem != tc.remains {
			t.Fatalf("classify(%q) = (%q, %q), want (%q, %q)", tc.line, cat, rem, tc.category, tc.remains)
		}
	}
}
