package drift

import "strings"

// Severity classifies a Change for notification filtering.
type Severity string
type severityOptions []Severity

func (option Severity) Match(input string) bool {
	return strings.ToUpper(input) == string(option)
}

func (options severityOptions) Includes(input string) bool {
	for _, i := range options {
		if i.Match(input) {
			return true
		}
	}
	return false
}

const (
	ALL      Severity = "ALL"
	BREAKING Severity = "BREAKING"
	ADDITIVE Severity = "ADDITIVE"
)

var ValidSeverities severityOptions = severityOptions{
	"ALL",      // notify on any change to the documented API
	"BREAKING", // notify only when a change can break generated code users
}

func ShouldNotify(r Report, notifySeverity string) bool {
	if r.Empty() {
		return false
	}
	if BREAKING.Match(notifySeverity) {
		return len(r.Breaking()) > 0
	}
	return true
}
