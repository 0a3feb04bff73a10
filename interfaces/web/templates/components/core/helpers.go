// Package core holds markup helpers shared by the component packages.
package core

import (
	"strings"

	"github.com/a-h/templ"
)

// Classes joins the non-empty class lists.
func Classes(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// Attr renders ` name="value"` with value escaped.
func Attr(name, value string) string {
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

// BoolAttr renders a valueless attribute when on is set.
func BoolAttr(name string, on bool) string {
	if !on {
		return ""
	}
	return " " + name
}
