package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// formatCount renders a frame or row count with thousands separators.
func formatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
