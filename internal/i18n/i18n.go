// Package i18n knows which UI language codes the launcher accepts.
package i18n

import (
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const Default = "en"

var codes = []string{"en", "es", "pt", "ru", "ja", "zh", "fr", "ar", "ko", "ndk"}

// reviewed by a human; everything else was machine translated
var reviewed = []string{"en", "pt", "ndk"}

func Codes() []string {
	return slices.Clone(codes)
}

func Supported(code string) bool {
	return slices.Contains(codes, code)
}

func MachineTranslated(code string) bool {
	return Supported(code) && !slices.Contains(reviewed, code)
}

// DisplayName returns the language's name in itself, or the code when the
// tag is unknown to x/text.
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}
