// Package intent maps operator text to one of a closed set of intents.
//
// Classification is a pure function of the request: the text typed (or
// spoken), text extracted from an uploaded screenshot, the dashboard page
// the operator is on and an optional confirmation token. Checks run in a
// fixed order and the first match wins:
//
//  1. confirm-pending: an affirmation ("yes", "y", "confirm", "proceed")
//     together with a confirmation token.
//  2. status-query: the word "status", or a trip-like text (hyphen or
//     colon, no "remove") typed on a trips-listing page.
//  3. remove-vehicle: "remove ... vehicle ... from ...", "remove vehicle",
//     or "remove" with screenshot text.
//  4. status-query fallback: trip-like text that does not mention "remove".
//  5. unrecognized.
package intent

import (
	"regexp"
	"strings"

	"movi/internal/utils"
)

type Kind string

const (
	KindConfirm       Kind = "confirm_pending"
	KindStatus        Kind = "status_query"
	KindRemoveVehicle Kind = "remove_vehicle"
	KindUnrecognized  Kind = "unrecognized"
)

const (
	HelpMessage          = "I didn't understand. Try: 'Remove vehicle from Bulk - 00:01', 'status of Bulk - 00:01', or upload an imageText and say 'remove vehicle'."
	ClarifyStatusMessage = "Which trip do you want the status of?"
	ClarifyRemoveMessage = "Which trip do you want to remove the vehicle from?"
)

// Input is what the chat widget sends.
type Input struct {
	Text        string
	ImageText   string
	CurrentPage string
	PendingID   string
}

// Intent is the classification result. Candidate is the trip reference to
// resolve (status and remove), Token the confirmation token (confirm).
// RequiresClarification is set when the intent is clear but no trip
// reference could be extracted; Message then holds the question to ask.
type Intent struct {
	Kind                  Kind
	Candidate             string
	Token                 string
	RequiresClarification bool
	Message               string
}

var (
	affirmations = map[string]bool{"yes": true, "y": true, "confirm": true, "proceed": true}

	reStatusWord        = regexp.MustCompile(`(?i)\bstatus\b`)
	reRemoveWord        = regexp.MustCompile(`(?i)\bremove\b`)
	reRemoveVehicleFrom = regexp.MustCompile(`(?i)\bremove\b.*\bvehicle\b.*\bfrom\b`)
	reRemoveVehicle     = regexp.MustCompile(`(?i)\bremove vehicle\b`)
	reFromTail          = regexp.MustCompile(`(?i)\bfrom\s+(.+)$`)
	reStatusLead        = regexp.MustCompile(`(?i)^(?:(?:what\s+is|what's|whats|show(?:\s+me)?|get|check|tell\s+me)\s+)?(?:the\s+)?(?:current\s+)?status(?:[\s:\-–]+(?:of|for)\b)?(?:[\s:\-–]+|$)`)
	reStatusTrail       = regexp.MustCompile(`(?i)\s*\bstatus\b\s*$`)
)

// Classifier holds the small amount of configuration classification needs.
type Classifier struct {
	tripsPages map[string]bool
}

// NewClassifier returns a classifier that treats the given UI pages as
// trips-listing pages (matched case-insensitively).
func NewClassifier(tripsPages []string) Classifier {
	pages := make(map[string]bool, len(tripsPages))
	for _, p := range tripsPages {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			pages[p] = true
		}
	}
	return Classifier{tripsPages: pages}
}

// Classify decides the intent of in.
func (c Classifier) Classify(in Input) Intent {
	text := utils.NormalizeSpace(in.Text)
	ocr := utils.NormalizeSpace(in.ImageText)
	token := strings.TrimSpace(in.PendingID)

	if token != "" && affirmations[normalizeAffirmation(text)] {
		return Intent{Kind: KindConfirm, Token: token}
	}

	mentionsRemove := reRemoveWord.MatchString(text)

	if reStatusWord.MatchString(text) || (c.onTripsPage(in.CurrentPage) && hasTripDelimiter(text) && !mentionsRemove) {
		return statusIntent(text, ocr)
	}

	if reRemoveVehicleFrom.MatchString(text) || reRemoveVehicle.MatchString(text) || (ocr != "" && mentionsRemove) {
		candidate := ocr
		if candidate == "" {
			if m := reFromTail.FindStringSubmatch(text); m != nil {
				candidate = cleanCandidate(m[1])
			}
		}
		if candidate == "" {
			return Intent{Kind: KindRemoveVehicle, RequiresClarification: true, Message: ClarifyRemoveMessage}
		}
		return Intent{Kind: KindRemoveVehicle, Candidate: candidate}
	}

	if hasTripDelimiter(text) && !mentionsRemove {
		return statusIntent(text, ocr)
	}

	return Intent{Kind: KindUnrecognized, Message: HelpMessage}
}

func (c Classifier) onTripsPage(page string) bool {
	return c.tripsPages[strings.ToLower(strings.TrimSpace(page))]
}

func statusIntent(text, ocr string) Intent {
	candidate := ocr
	if candidate == "" {
		candidate = StatusCandidate(text)
	}
	if candidate == "" {
		return Intent{Kind: KindStatus, RequiresClarification: true, Message: ClarifyStatusMessage}
	}
	return Intent{Kind: KindStatus, Candidate: candidate}
}

// StatusCandidate strips status phrasing ("what is the status of", "status
// of", a trailing "status") and returns the remaining trip reference.
func StatusCandidate(text string) string {
	s := strings.TrimSpace(text)
	s = reStatusLead.ReplaceAllString(s, "")
	s = reStatusTrail.ReplaceAllString(s, "")
	return cleanCandidate(s)
}

func cleanCandidate(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, ":-–, ")
	s = strings.TrimRight(s, "?.! ")
	s = strings.Trim(s, "\"'“”‘’ ")
	return strings.TrimSpace(s)
}

func normalizeAffirmation(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	return strings.TrimRight(s, ".! ")
}

func hasTripDelimiter(text string) bool {
	return strings.ContainsAny(text, "-:")
}
