package index

// White-box test: buildMatch shapes the MATCH expression and is not exposed.

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestBuildMatch(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single term", "milk", "milk*"},
		{"terms are OR-joined", "milk eggs", "milk* OR eggs*"},
		{"lowercased", "Milk", "milk*"},
		{"punctuation stripped", `"milk," eggs!`, "milk* OR eggs*"},
		{"fts operators neutralised", "a* -b NEAR(c)", "a* OR b* OR nearc*"},
		{"only punctuation", `"" ***`, ""},
		{"empty", "   ", ""},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(buildMatch(tc.in), qt.Equals, tc.want)
		})
	}
}
