package pagewatch

import "strings"

// Rule is an ordered set of lowercase tokens. A rule matches a text when
// every token is a substring of the lowercased text (AND semantics).
type Rule []string

// RuleSet is a disjunction of rules: it matches when any rule matches
// (OR-of-ANDs). Rule sets are immutable after parsing.
type RuleSet []Rule

// ParseRuleSet parses a rule string of the form "a&b,c" where rules are
// separated by "," and tokens within a rule by "&". Tokens are trimmed and
// lowercased; empty tokens are dropped and rules left with no tokens are
// discarded, so a rule is never vacuously satisfied.
// Returns EINVALID if no valid rule remains.
func ParseRuleSet(s string) (RuleSet, error) {
	var set RuleSet
	for _, raw := range strings.Split(s, ",") {
		var rule Rule
		for _, tok := range strings.Split(raw, "&") {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok == "" {
				continue
			}
			rule = append(rule, tok)
		}
		if len(rule) > 0 {
			set = append(set, rule)
		}
	}
	if len(set) == 0 {
		return nil, Errorf(EINVALID, "no valid keyword rules in %q", s)
	}
	return set, nil
}

// Matches reports whether any rule in the set is satisfied by the text.
// Comparison is case-insensitive. An empty text matches no rule.
func (rs RuleSet) Matches(text string) bool {
	if len(rs) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, rule := range rs {
		if rule.matches(lower) {
			return true
		}
	}
	return false
}

// matches expects text already lowercased.
func (r Rule) matches(lower string) bool {
	for _, tok := range r {
		if !strings.Contains(lower, tok) {
			return false
		}
	}
	return true
}
