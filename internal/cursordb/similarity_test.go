package cursordb

import "testing"

func TestSimilarityRatio(t *testing.T) {
	cases := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"myrepo", "myrepo", 1.0, 1.0},
		{"MyRepo", "myrepo", 1.0, 1.0},
		{"", "", 1.0, 1.0},
		{"myrepo", "my-repo-fork", 0.5, 0.95},
		{"completely", "different", 0.0, 0.4},
	}

	for _, c := range cases {
		got := similarityRatio(c.a, c.b)
		if got < c.min || got > c.max {
			t.Errorf("similarityRatio(%q, %q) = %.2f, want in [%.2f, %.2f]", c.a, c.b, got, c.min, c.max)
		}
	}
}

func TestSimilarityRatio_Symmetric(t *testing.T) {
	a, b := "project-alpha", "alpha-project"
	if similarityRatio(a, b) != similarityRatio(b, a) {
		t.Errorf("similarityRatio should be symmetric")
	}
}

func TestNormalizeGitURL(t *testing.T) {
	cases := map[string]string{
		"git@github.com:foo/bar.git": "https://github.com/foo/bar",
		"https://github.com/Foo/Bar.git/": "https://github.com/foo/bar",
		"https://github.com/foo/bar": "https://github.com/foo/bar",
	}
	for in, want := range cases {
		if got := normalizeGitURL(in); got != want {
			t.Errorf("normalizeGitURL(%q) = %q, want %q", in, got, want)
		}
	}
}
