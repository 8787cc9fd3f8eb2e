package checks_test

import (
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/check/checktest"
	"go.followtheprocess.codes/themecheck/internal/checks"
)

func TestMissingTemplate(t *testing.T) {
	tests := []struct {
		files   map[string]string // Other files in the theme
		options map[string]any    // Check options
		name    string            // Name of the test case
		src     string            // Template to check
		want    string            // Expected offense summary
	}{
		{
			name: "missing snippet",
			src:  `{% render 'card' %}`,
			want: "(10, 16) 'snippets/card.liquid' does not exist\n",
		},
		{
			name: "missing include",
			src:  `{% include 'card', product: product %}`,
			want: "(11, 17) 'snippets/card.liquid' does not exist\n",
		},
		{
			name:  "existing snippet",
			src:   `{% render 'card' with product as item %}`,
			files: map[string]string{"snippets/card.liquid": ""},
		},
		{
			name: "missing section",
			src:  `{% section 'header' %}`,
			want: "(11, 19) 'sections/header.liquid' does not exist\n",
		},
		{
			name:  "existing section",
			src:   `{% section 'header' %}`,
			files: map[string]string{"sections/header.liquid": ""},
		},
		{
			name: "dynamic include",
			src:  `{% include snippet_name %}`,
		},
		{
			name:    "ignored",
			src:     `{% render 'icon-cart' %}{% render 'card' %}`,
			options: map[string]any{"ignoreMissing": []any{"snippets/icon-*"}},
			want:    "(34, 40) 'snippets/card.liquid' does not exist\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offenses := checktest.Offenses(t, checks.MissingTemplate, tt.src,
				checktest.WithFiles(tt.files),
				checktest.WithSettings(check.CheckSettings{Options: tt.options}),
			)
			test.Diff(t, summary(offenses), tt.want)
		})
	}
}
