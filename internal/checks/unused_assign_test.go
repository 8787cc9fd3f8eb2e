package checks_test

import (
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check/checktest"
	"go.followtheprocess.codes/themecheck/internal/checks"
)

func TestUnusedAssign(t *testing.T) {
	tests := []struct {
		name  string // Name of the test case
		src   string // Template to check
		want  string // Expected offense summary
		fixed string // Expected source once fixes are applied, if any
	}{
		{
			name: "used",
			src:  `{% assign x = 1 %}{{ x }}`,
		},
		{
			name:  "unused",
			src:   `{% assign x = 1 %}{% assign y = 2 %}{{ x }}`,
			want:  "(18, 36) The variable 'y' is assigned but not used\n",
			fixed: `{% assign x = 1 %}{{ x }}`,
		},
		{
			name:  "every unused assign",
			src:   `{% assign y = 1 %}{% assign y = 2 %}`,
			want:  "(0, 18) The variable 'y' is assigned but not used\n(18, 36) The variable 'y' is assigned but not used\n",
			fixed: "",
		},
		{
			name: "underscore",
			src:  `{% assign _y = 1 %}`,
		},
		{
			name: "used in a loop",
			src:  `{% assign items = 1 %}{% for i in items %}{{ i }}{% endfor %}`,
		},
		{
			name: "used in a condition",
			src:  `{% assign show = true %}{% if show %}shown{% endif %}`,
		},
		{
			name: "used in a filter argument",
			src:  `{% assign n = 2 %}{{ 1 | plus: n }}`,
		},
		{
			name: "used in raw markup",
			src:  `{% assign c = 1 %}{% cycle c, 'b' %}`,
		},
		{
			name:  "quoted in raw markup",
			src:   `{% assign c = 1 %}{% cycle 'c', 'b' %}`,
			want:  "(0, 18) The variable 'c' is assigned but not used\n",
			fixed: `{% cycle 'c', 'b' %}`,
		},
		{
			name: "unparseable",
			src:  `{% assign x = 1 %}{% if %}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offenses := checktest.Offenses(t, checks.UnusedAssign, tt.src)
			test.Diff(t, summary(offenses), tt.want)

			if tt.want != "" {
				test.Equal(t, checktest.Fixed(t, tt.src, offenses), tt.fixed)
			}
		})
	}
}
