package readability

import "testing"

func TestAbsolutizeBranches(t *testing.T) {
	abs, err := newAbsolutizer("https://example.com/blog/post/index.html")
	if err != nil {
		t.Fatalf("newAbsolutizer: %v", err)
	}

	cases := []struct {
		name string
		ref  string
		want string
	}{
		{"empty", "", ""},
		{"already absolute", "https://other.com/x", "https://other.com/x"},
		{"protocol relative", "//cdn.example.com/img.png", "https://cdn.example.com/img.png"},
		{"root relative", "/about", "https://example.com/about"},
		{"dot relative", "./sibling.html", "https://example.com/blog/post/sibling.html"},
		{"fragment", "#section-2", "#section-2"},
		{"plain relative", "image.png", "https://example.com/blog/post/image.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := abs.absolutize(tc.ref)
			if got != tc.want {
				t.Errorf("absolutize(%q) = %q, want %q", tc.ref, got, tc.want)
			}
		})
	}
}

func TestAbsolutizeIdempotent(t *testing.T) {
	abs, err := newAbsolutizer("https://example.com/a/b/")
	if err != nil {
		t.Fatalf("newAbsolutizer: %v", err)
	}
	once := abs.absolutize("c.html")
	twice := abs.absolutize(once)
	if once != twice {
		t.Errorf("absolutize not idempotent: %q then %q", once, twice)
	}
}

func TestNewAbsolutizerRejectsMissingSchemeOrHost(t *testing.T) {
	cases := []string{"", "not-a-url", "/just/a/path", "scheme-only:"}
	for _, c := range cases {
		if _, err := newAbsolutizer(c); err == nil {
			t.Errorf("newAbsolutizer(%q): expected error, got nil", c)
		}
	}
}

func TestAbsolutizePathWithNoTrailingSlash(t *testing.T) {
	abs, err := newAbsolutizer("https://example.com/a/b")
	if err != nil {
		t.Fatalf("newAbsolutizer: %v", err)
	}
	got := abs.absolutize("c.html")
	want := "https://example.com/a/c.html"
	if got != want {
		t.Errorf("absolutize(%q) = %q, want %q", "c.html", got, want)
	}
}
