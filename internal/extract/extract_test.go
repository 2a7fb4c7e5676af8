package extract

import "testing"

func TestExtractPhoneFormats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my number is 9876543210", "9876543210"},
		{"call me at +91-9876543210", "919876543210"},
		{"+919876543210", "919876543210"},
		{"reach me on 123-456-7890", "1234567890"},
		{"phone (123) 456-7890", "1234567890"},
		{"number is 123.456.7890 thanks", "1234567890"},
		{"12345", ""},                // too short
		{"12345678901234567890", ""}, // too long
	}

	for _, tt := range tests {
		got := Extract(tt.in).Mobile
		if got != tt.want {
			t.Errorf("Extract(%q).Mobile = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractComplaintID(t *testing.T) {
	f := Extract("status of cmp9b41ca0f please")
	if f.ComplaintID != "CMP9B41CA0F" {
		t.Errorf("ComplaintID = %q, want CMP9B41CA0F", f.ComplaintID)
	}
}

func TestComplaintIDDigitsNotTreatedAsPhone(t *testing.T) {
	// The identifier contains digit runs, but its span is masked before
	// phone scanning.
	f := Extract("CMP1234567890")
	if f.ComplaintID != "CMP1234567890" {
		t.Errorf("ComplaintID = %q", f.ComplaintID)
	}
	if f.Mobile != "" {
		t.Errorf("Mobile = %q, want empty", f.Mobile)
	}
}

func TestExtractNameWholeMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"john smith", "John Smith"},
		{"  Alice  ", "Alice"},
		{"Mary Jane Watson Parker", "Mary Jane Watson Parker"},
		{"a", ""},                       // word too short
		{"john5", ""},                   // not alphabetic
		{"one two three four five", ""}, // too many words
	}

	for _, tt := range tests {
		got := Extract(tt.in).Name
		if got != tt.want {
			t.Errorf("Extract(%q).Name = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNameDenylist(t *testing.T) {
	for _, word := range []string{"yes", "no", "ok", "okay", "sure", "hello", "hi", "help", "what", "how"} {
		if got := Extract(word).Name; got != "" {
			t.Errorf("Extract(%q).Name = %q, want empty", word, got)
		}
	}
}

func TestExtractNameIntroPhrase(t *testing.T) {
	f := Extract("I have an issue with my laptop, my name is John Smith, number is 9876543210")
	if f.Name != "John Smith" {
		t.Errorf("Name = %q, want John Smith", f.Name)
	}
	if f.Mobile != "9876543210" {
		t.Errorf("Mobile = %q, want 9876543210", f.Mobile)
	}
}

func TestProseIsNotAName(t *testing.T) {
	for _, msg := range []string{
		"my laptop is broken",
		"it is not working",
		"call me at my office",
	} {
		if got := Extract(msg).Name; got != "" {
			t.Errorf("Extract(%q).Name = %q, want empty", msg, got)
		}
	}
}

func TestIntroPhraseStopsAtProse(t *testing.T) {
	f := Extract("my name is John Smith and my number is 9876543210")
	if f.Name != "John Smith" {
		t.Errorf("Name = %q, want John Smith", f.Name)
	}
	if f.Mobile != "9876543210" {
		t.Errorf("Mobile = %q, want 9876543210", f.Mobile)
	}
}

func TestExtractEmail(t *testing.T) {
	f := Extract("contact me at John.Smith@Example.COM")
	if f.Email != "john.smith@example.com" {
		t.Errorf("Email = %q", f.Email)
	}
}

func TestExtractUrgency(t *testing.T) {
	if f := Extract("this is URGENT, my laptop died"); f.Urgency != "high" {
		t.Errorf("Urgency = %q, want high", f.Urgency)
	}
	if f := Extract("my laptop died"); f.Urgency != "" {
		t.Errorf("Urgency = %q, want empty", f.Urgency)
	}
}
