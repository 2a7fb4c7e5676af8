// Package extract pulls structured fields (phone numbers, complaint IDs,
// names, emails, urgency markers) out of free-form user messages. Extraction
// never fails: fields that cannot be found are simply left empty.
package extract

import (
	"regexp"
	"strings"
)

// Fields holds the values extracted from a single message. Empty string
// means the field was not present.
type Fields struct {
	Name        string `json:"name,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	ComplaintID string `json:"complaint_id,omitempty"`
	Email       string `json:"email,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
}

// Empty reports whether no field was extracted at all.
func (f Fields) Empty() bool {
	return f == Fields{}
}

// complaintIDPattern matches the fixed complaint identifier shape:
// "CMP" followed by 8-10 alphanumerics, case-insensitive.
var complaintIDPattern = regexp.MustCompile(`(?i)\bcmp[a-z0-9]{8,10}\b`)

// phonePatterns are tried in a fixed order; the first match whose cleaned
// digit count lies in [10,15] wins. The US pattern requires real separators
// so it cannot claim a 10-digit prefix of a longer bare number.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,4}[-.\s]\d{9,14}`),         // international with separated country code
	regexp.MustCompile(`\+\d{10,15}\b`),                   // compact international
	regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`), // US format: 123-456-7890
	regexp.MustCompile(`\b\d{10,15}\b`),                   // bare digits
	regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`),   // (123) 456-7890
}

var introPhrasePattern = regexp.MustCompile(`(?i)\b(?:my name is|i am|i'm|call me|this is|name is)\s+([a-zA-Z][a-zA-Z ]{1,40})`)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// nonNameWords are short common replies that must never be treated as names.
var nonNameWords = map[string]bool{
	"yes": true, "no": true, "ok": true, "okay": true, "sure": true,
	"hello": true, "hi": true, "help": true, "what": true, "how": true,
}

var urgencyWords = []string{"urgent", "emergency", "asap", "immediately"}

// nameStopWords are function words that never appear inside a person's name.
// A candidate containing one is either not a name or has trailing prose that
// must be cut off.
var nameStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "my": true, "is": true, "am": true,
	"are": true, "was": true, "and": true, "or": true, "but": true, "at": true,
	"it": true, "its": true, "of": true, "to": true, "in": true, "on": true,
	"for": true, "with": true, "not": true, "this": true, "that": true,
	"your": true, "our": true, "me": true, "you": true, "have": true,
	"has": true, "be": true, "by": true, "from": true, "number": true,
	"mobile": true, "phone": true, "complaint": true, "issue": true,
	"problem": true, "working": true, "broken": true,
}

var digitCleaner = strings.NewReplacer("-", "", ".", "", " ", "", "(", "", ")", "", "+", "")

// Extract pulls all recognizable fields out of the raw message. Complaint
// identifiers are extracted first and their spans masked before phone
// scanning, so digits inside a CMP token can never seed a phone candidate.
func Extract(raw string) Fields {
	var f Fields

	masked := raw
	if spans := complaintIDPattern.FindAllStringIndex(raw, -1); len(spans) > 0 {
		f.ComplaintID = strings.ToUpper(raw[spans[0][0]:spans[0][1]])
		b := []byte(masked)
		for _, span := range spans {
			for i := span[0]; i < span[1]; i++ {
				b[i] = ' '
			}
		}
		masked = string(b)
	}

	f.Mobile = extractPhone(masked)
	f.Name = extractName(raw)

	if m := emailPattern.FindString(raw); m != "" {
		f.Email = strings.ToLower(m)
	}

	lower := strings.ToLower(raw)
	for _, w := range urgencyWords {
		if strings.Contains(lower, w) {
			f.Urgency = "high"
			break
		}
	}

	return f
}

func extractPhone(text string) string {
	for _, pattern := range phonePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			digits := digitCleaner.Replace(match)
			if len(digits) >= 10 && len(digits) <= 15 && isDigits(digits) {
				return digits
			}
		}
	}
	return ""
}

// extractName applies the two-tier heuristic: if the whole trimmed message
// looks like a bare name it wins; otherwise introduction phrases ("my name
// is ...") are searched. Accepted names are capitalized word by word.
func extractName(raw string) string {
	trimmed := strings.TrimSpace(raw)

	// Tier (a): the entire message is the name. Function words disqualify
	// the message; "my laptop is broken" is prose, not a name.
	if words := strings.Fields(trimmed); len(words) >= 1 && len(words) <= 4 {
		if allNameWords(words) && !nonNameWords[strings.ToLower(trimmed)] && !anyStopWord(words) {
			return capitalizeWords(words)
		}
	}

	// Tier (b): introduction phrase followed by the name. The capture is cut
	// at the first function word so trailing prose ("and my number is") does
	// not bleed into the name.
	if m := introPhrasePattern.FindStringSubmatch(raw); m != nil {
		words := strings.Fields(strings.TrimSpace(m[1]))
		for i, w := range words {
			if nameStopWords[strings.ToLower(w)] {
				words = words[:i]
				break
			}
		}
		if len(words) >= 1 && len(words) <= 4 && allNameWords(words) {
			for _, w := range words {
				if nonNameWords[strings.ToLower(w)] {
					return ""
				}
			}
			return capitalizeWords(words)
		}
	}

	return ""
}

func anyStopWord(words []string) bool {
	for _, w := range words {
		if nameStopWords[strings.ToLower(w)] {
			return true
		}
	}
	return false
}

func allNameWords(words []string) bool {
	for _, w := range words {
		if len(w) < 2 || len(w) > 20 || !isAlpha(w) {
			return false
		}
	}
	return true
}

func capitalizeWords(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(out, " ")
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
