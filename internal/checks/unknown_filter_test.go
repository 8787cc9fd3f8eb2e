package checks_test

import (
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/check/checktest"
	"go.followtheprocess.codes/themecheck/internal/checks"
)

func TestUnknownFilter(t *testing.T) {
	docset := check.StaticDocset{FilterNames: []string{"upcase", "plus"}}

	t.Run("no docset", func(t *testing.T) {
		offenses := checktest.Offenses(t, checks.UnknownFilter, `{{ a | nope }}`)
		test.Equal(t, len(offenses), 0)
	})

	t.Run("known", func(t *testing.T) {
		offenses := checktest.Offenses(t, checks.UnknownFilter, `{{ a | upcase }}{% assign b = 1 | plus: 2 %}`, checktest.WithDocset(docset))
		test.Equal(t, len(offenses), 0)
	})

	t.Run("unknown", func(t *testing.T) {
		offenses := checktest.Offenses(t, checks.UnknownFilter, `{{ a | upcase | nope }}`, checktest.WithDocset(docset))
		test.Diff(t, summary(offenses), "(14, 20) Unknown filter 'nope' used.\n")
	})
}
