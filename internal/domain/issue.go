package domain

import "strings"

// SupportedIssue is one entry of the fixed issue catalog.
type SupportedIssue struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Keywords    []string `json:"keywords"`
}

// SupportedIssues lists the problem categories the desk handles.
// Declaration order doubles as match precedence in IdentifyIssue.
var SupportedIssues = []SupportedIssue{
	{
		Type:        "wifi",
		Name:        "Wi-Fi not working",
		Description: "Network connectivity issues",
		Price:       20,
		Keywords:    []string{"wifi", "wi-fi", "wireless", "internet", "connection", "network", "connectivity"},
	},
	{
		Type:        "email",
		Name:        "Email login issues",
		Description: "Password reset and login problems",
		Price:       15,
		Keywords:    []string{"email", "login", "password", "reset", "account", "access", "signin"},
	},
	{
		Type:        "performance",
		Name:        "Slow laptop performance",
		Description: "CPU change and optimization",
		Price:       25,
		Keywords:    []string{"laptop", "slow", "performance", "cpu", "speed", "computer", "pc", "optimization"},
	},
	{
		Type:        "printer",
		Name:        "Printer problems",
		Description: "Power plug or driver issues",
		Price:       10,
		Keywords:    []string{"printer", "printing", "power", "plug", "cable", "hardware", "driver"},
	},
}

// IdentifyIssue resolves free-form text to a catalog entry. Matching is a
// case-insensitive substring scan over each entry's keywords; the first
// declared entry with any keyword present wins. ok is false when no keyword
// matches.
func IdentifyIssue(description string) (SupportedIssue, bool) {
	text := strings.ToLower(description)
	for _, issue := range SupportedIssues {
		for _, keyword := range issue.Keywords {
			if strings.Contains(text, keyword) {
				return issue, true
			}
		}
	}
	return SupportedIssue{}, false
}
