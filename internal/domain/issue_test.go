package domain

import "testing"

func TestIdentifyIssueSingleCategory(t *testing.T) {
	cases := []struct {
		text        string
		description string
		price       int
	}{
		{"the wifi keeps dropping", "Network connectivity issues", 20},
		{"I cannot reset my password", "Password reset and login problems", 15},
		{"my CPU fan is loud and everything lags", "CPU change and optimization", 25},
		{"printer won't turn on", "Power plug or driver issues", 10},
	}
	for _, tc := range cases {
		issue, ok := IdentifyIssue(tc.text)
		if !ok {
			t.Fatalf("IdentifyIssue(%q): no match", tc.text)
		}
		if issue.Description != tc.description {
			t.Fatalf("IdentifyIssue(%q): got %q, want %q", tc.text, issue.Description, tc.description)
		}
		if issue.Price != tc.price {
			t.Fatalf("IdentifyIssue(%q): got price %d, want %d", tc.text, issue.Price, tc.price)
		}
	}
}

func TestIdentifyIssueCaseInsensitive(t *testing.T) {
	issue, ok := IdentifyIssue("MY WI-FI IS DOWN")
	if !ok || issue.Type != "wifi" {
		t.Fatalf("got (%v, %v), want wifi match", issue.Type, ok)
	}
}

func TestIdentifyIssueDeclaredOrderWins(t *testing.T) {
	// Keywords from two categories: the first declared category wins.
	cases := []struct {
		text string
		want string
	}{
		{"my laptop cannot join the wifi", "wifi"},          // wifi beats performance
		{"email is slow on this computer", "email"},         // email beats performance
		{"my slow printer takes forever", "performance"},    // performance beats printer
		{"can't login after the internet reset", "wifi"},    // wifi beats email
		{"printer driver makes the laptop slow", "performance"},
	}
	for _, tc := range cases {
		issue, ok := IdentifyIssue(tc.text)
		if !ok {
			t.Fatalf("IdentifyIssue(%q): no match", tc.text)
		}
		if issue.Type != tc.want {
			t.Fatalf("IdentifyIssue(%q): got %q, want %q", tc.text, issue.Type, tc.want)
		}
	}
}

func TestIdentifyIssueNoMatch(t *testing.T) {
	for _, text := range []string{"my cat is sick", "", "the coffee machine exploded"} {
		if issue, ok := IdentifyIssue(text); ok {
			t.Fatalf("IdentifyIssue(%q): unexpected match %q", text, issue.Type)
		}
	}
}

func TestCatalogOrder(t *testing.T) {
	want := []string{"wifi", "email", "performance", "printer"}
	if len(SupportedIssues) != len(want) {
		t.Fatalf("catalog has %d entries, want %d", len(SupportedIssues), len(want))
	}
	for i, issue := range SupportedIssues {
		if issue.Type != want[i] {
			t.Fatalf("catalog[%d] = %q, want %q", i, issue.Type, want[i])
		}
	}
}
