package translation_engine

import (
	"sort"
	"strings"

	"github.com/docglot/docglot/internal/models"
)

type languageLabel struct {
	english string
	native  string
}

// translationLanguageLabels is the closed picker set.
var translationLanguageLabels = map[string]languageLabel{
	"ar": {english: "Arabic", native: "العربية"},
	"de": {english: "German", native: "Deutsch"},
	"en": {english: "English", native: "English"},
	"es": {english: "Spanish", native: "Español"},
	"fa": {english: "Persian", native: "فارسی"},
	"fr": {english: "French", native: "Français"},
	"hi": {english: "Hindi", native: "हिन्दी"},
	"id": {english: "Indonesian", native: "Bahasa Indonesia"},
	"it": {english: "Italian", native: "Italiano"},
	"ja": {english: "Japanese", native: "日本語"},
	"ko": {english: "Korean", native: "한국어"},
	"pl": {english: "Polish", native: "Polski"},
	"pt": {english: "Portuguese", native: "Português"},
	"ru": {english: "Russian", native: "Русский"},
	"th": {english: "Thai", native: "ไทย"},
	"tr": {english: "Turkish", native: "Türkçe"},
	"vi": {english: "Vietnamese", native: "Tiếng Việt"},
	"zh": {english: "Chinese", native: "中文"},
}

// KnownLanguage reports whether code is a selectable translation language.
func KnownLanguage(code string) bool {
	_, ok := translationLanguageLabels[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

// LanguageLabel resolves a code to its English name for prompt text. Unknown
// codes pass through unchanged so an exotic but valid request still reads
// sensibly to the provider.
func LanguageLabel(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if label, ok := translationLanguageLabels[code]; ok {
		return label.english
	}
	return code
}

// TargetLanguageOptions lists every selectable target, sorted by code.
func TargetLanguageOptions() []models.LanguageOption {
	options := make([]models.LanguageOption, 0, len(translationLanguageLabels))
	for code, label := range translationLanguageLabels {
		options = append(options, models.LanguageOption{
			Code:   code,
			Label:  label.english,
			Native: label.native,
		})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Code < options[j].Code })
	return options
}

// SourceLanguageOptions is TargetLanguageOptions plus the auto-detect entry
// in front.
func SourceLanguageOptions() []models.LanguageOption {
	options := []models.LanguageOption{
		{Code: models.SourceAuto, Label: "Auto Detect"},
	}
	return append(options, TargetLanguageOptions()...)
}
