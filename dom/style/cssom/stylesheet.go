package cssom

import (
	"strings"
)

// StyleSheet is an interface to abstract away a stylesheet-implementation.
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
	String() string         // canonical text of the stylesheet
}

// Rule is the type stylesheets consists of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string        // the prelude / selectors of the rule
	Properties() []string    // property keys, e.g. "margin-top"
	Value(string) string     // property value for key, e.g. "15px"
	IsImportant(string) bool // is property key marked as important?
}

// RulesFor returns all rules of sheet whose selector list contains a
// selector mentioning fragment, e.g. "#myID" or ".marker".
func RulesFor(sheet StyleSheet, fragment string) []Rule {
	var rules []Rule
	for _, r := range sheet.Rules() {
		for _, sel := range strings.Split(r.Selector(), ",") {
			if strings.Contains(strings.TrimSpace(sel), fragment) {
				rules = append(rules, r)
				break
			}
		}
	}
	tracer().Debugf("%d rule(s) mention %q", len(rules), fragment)
	return rules
}
