package checks_test

import (
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check/checktest"
	"go.followtheprocess.codes/themecheck/internal/checks"
)

func TestTranslationKeyExists(t *testing.T) {
	locales := map[string]string{
		"locales/en.default.json": `{"general": {"title": "Hello"}}`,
		"locales/fr.json":         `{"general": {"missing": "Manquant"}}`,
	}

	tests := []struct {
		files map[string]string // Files of the theme
		name  string            // Name of the test case
		src   string            // Template to check
		want  string            // Expected offense summary
	}{
		{
			name:  "exists",
			src:   `{{ 'general.title' | t }}`,
			files: locales,
		},
		{
			name:  "missing",
			src:   `{{ 'general.missing' | t }}`,
			files: locales,
			want:  "(3, 20) 'general.missing' does not have a matching entry in 'locales/en.default.json'\n",
		},
		{
			name:  "translate",
			src:   `{{ 'general.missing' | translate }}`,
			files: locales,
			want:  "(3, 20) 'general.missing' does not have a matching entry in 'locales/en.default.json'\n",
		},
		{
			name:  "echo",
			src:   `{% echo 'general.nope' | t %}`,
			files: locales,
			want:  "(8, 22) 'general.nope' does not have a matching entry in 'locales/en.default.json'\n",
		},
		{
			name:  "platform key",
			src:   `{{ 'shopify.checkout.title' | t }}`,
			files: locales,
		},
		{
			name:  "not translated",
			src:   `{{ 'general.missing' | upcase }}`,
			files: locales,
		},
		{
			name: "no default locale",
			src:  `{{ 'general.missing' | t }}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offenses := checktest.Offenses(t, checks.TranslationKeyExists, tt.src, checktest.WithFiles(tt.files))
			test.Diff(t, summary(offenses), tt.want)
		})
	}
}
