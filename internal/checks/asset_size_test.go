package checks_test

import (
	"strings"
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/check/checktest"
	"go.followtheprocess.codes/themecheck/internal/checks"
)

func TestAssetSizeAppBlockJavaScript(t *testing.T) {
	const block = `{% schema %}{"javascript": "app.js"}{% endschema %}`

	tests := []struct {
		files   map[string]string // Other files in the theme
		options map[string]any    // Check options
		name    string            // Name of the test case
		src     string            // Template to check
		want    string            // Expected offense summary
	}{
		{
			name: "missing",
			src:  block,
			want: "(28, 34) 'app.js' does not exist.\n",
		},
		{
			name:  "small",
			src:   block,
			files: map[string]string{"assets/app.js": "console.log(1)"},
		},
		{
			name:  "over default threshold",
			src:   block,
			files: map[string]string{"assets/app.js": strings.Repeat("a", 10001)},
			want:  "(28, 34) The file size for 'app.js' exceeds the configured threshold.\n",
		},
		{
			name:    "over configured threshold",
			src:     block,
			files:   map[string]string{"assets/app.js": "console.log(1)"},
			options: map[string]any{"thresholdInBytes": 5},
			want:    "(28, 34) The file size for 'app.js' exceeds the configured threshold.\n",
		},
		{
			name: "no javascript",
			src:  `{% schema %}{"name": "Block"}{% endschema %}`,
		},
		{
			name: "invalid schema",
			src:  `{% schema %}{"javascript": {% endschema %}`,
		},
		{
			name: "other raw tag",
			src:  `{% raw %}{"javascript": "app.js"}{% endraw %}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offenses := checktest.Offenses(t, checks.AssetSizeAppBlockJavaScript, tt.src,
				checktest.WithPath("blocks/app.liquid"),
				checktest.WithFiles(tt.files),
				checktest.WithSettings(check.CheckSettings{Options: tt.options}),
			)
			test.Diff(t, summary(offenses), tt.want)
		})
	}
}
