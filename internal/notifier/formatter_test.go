package notifier

import (
	"strings"
	"testing"
	"time"
)

func TestFormatNotFound(t *testing.T) {
	plain := FormatNotFound("unicorn", nil)
	if strings.Contains(plain, "Did you mean") {
		t.Error("no suggestions expected")
	}
	with := FormatNotFound("<b>cat", []string{"Scared Cat", "Cat & Mouse"})
	for _, want := range []string{"'&lt;b&gt;cat'", "• Scared Cat ✨", "• Cat &amp; Mouse ✨", "Did you mean one of these? 🤔"} {
		if !strings.Contains(with, want) {
			t.Errorf("reply missing %q:\n%s", want, with)
		}
	}
}

func TestFormatWait(t *testing.T) {
	tests := map[time.Duration]string{
		7 * time.Second:         "Please wait 7 seconds",
		7900 * time.Millisecond: "Please wait 7 seconds",
		100 * time.Millisecond:  "Please wait 1 seconds",
	}
	for in, want := range tests {
		if got := FormatWait(in); !strings.HasPrefix(got, want) {
			t.Errorf("FormatWait(%v) = %q", in, got)
		}
	}
}

func TestFormatGreetingAndCaption(t *testing.T) {
	if !strings.HasPrefix(FormatGreeting(""), "Hi there!") {
		t.Error("anonymous greeting")
	}
	if !strings.HasPrefix(FormatGreeting("Ann"), "Hi Ann!") {
		t.Error("named greeting")
	}
	if got := FormatCaption("Plush Pepe"); got != "Price chart for 🎁 Plush Pepe (12h) ✨" {
		t.Errorf("caption = %q", got)
	}
}
