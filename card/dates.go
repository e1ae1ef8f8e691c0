package card

import "golang.org/x/text/language"

// Supported date layouts, first entry is the fallback.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "Jan 2, 2006, 3:04 PM"},
	{language.BritishEnglish, "2 Jan 2006, 15:04"},
	{language.German, "02.01.2006, 15:04"},
	{language.French, "02/01/2006 15:04"},
	{language.Japanese, "2006/01/02 15:04"},
}

var dateMatcher = newDateMatcher()

func newDateMatcher() language.Matcher {
	tags := make([]language.Tag, len(dateLayouts))
	for i, l := range dateLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}

// DateLayout returns the time layout for the best supported match of locale.
func DateLayout(locale string) string {
	if locale == "" {
		return dateLayouts[0].layout
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return dateLayouts[0].layout
	}
	_, index, confidence := dateMatcher.Match(tag)
	if confidence == language.No {
		return dateLayouts[0].layout
	}
	return dateLayouts[index].layout
}
