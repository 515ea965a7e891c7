package format

import "testing"

func TestEscapeHTML(t *testing.T) {
	cases := map[string]string{
		"plain":            "plain",
		"a < b && c > d":   "a &lt; b &amp;&amp; c &gt; d",
		"<script>":         "&lt;script&gt;",
		"Fish & Chips Ltd": "Fish &amp; Chips Ltd",
	}
	for in, want := range cases {
		if got := EscapeHTML(in); got != want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWrappers(t *testing.T) {
	if got := Bold("<x>"); got != "<b>&lt;x&gt;</b>" {
		t.Fatalf("Bold = %q", got)
	}
	if got := Code("a&b"); got != "<code>a&amp;b</code>" {
		t.Fatalf("Code = %q", got)
	}
}
