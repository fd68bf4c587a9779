// Package language holds the table of languages the translation endpoint accepts.
package language

import (
	"sort"
	"strings"
)

// Auto lets the translation endpoint detect the source language.
// It is only valid as a source code.
const Auto = "auto"

type Language struct {
	Code string
	Name string
}

var names = map[string]string{
	"af":      "Afrikaans",
	"sq":      "Albanian",
	"am":      "Amharic",
	"ar":      "Arabic",
	"hy":      "Armenian",
	"az":      "Azerbaijani",
	"eu":      "Basque",
	"be":      "Belarusian",
	"bn":      "Bengali",
	"bs":      "Bosnian",
	"bg":      "Bulgarian",
	"ca":      "Catalan",
	"ceb":     "Cebuano",
	"ny":      "Chichewa",
	"zh":      "Chinese (Simplified)",
	"zh_HANT": "Chinese (Traditional)",
	"co":      "Corsican",
	"hr":      "Croatian",
	"cs":      "Czech",
	"da":      "Danish",
	"nl":      "Dutch",
	"en":      "English",
	"eo":      "Esperanto",
	"et":      "Estonian",
	"tl":      "Filipino",
	"fi":      "Finnish",
	"fr":      "French",
	"fy":      "Frisian",
	"gl":      "Galician",
	"ka":      "Georgian",
	"de":      "German",
	"el":      "Greek",
	"gu":      "Gujarati",
	"ht":      "Haitian Creole",
	"ha":      "Hausa",
	"haw":     "Hawaiian",
	"he":      "Hebrew",
	"hi":      "Hindi",
	"hmn":     "Hmong",
	"hu":      "Hungarian",
	"is":      "Icelandic",
	"ig":      "Igbo",
	"id":      "Indonesian",
	"ga":      "Irish",
	"it":      "Italian",
	"ja":      "Japanese",
	"jw":      "Javanese",
	"kn":      "Kannada",
	"kk":      "Kazakh",
	"km":      "Khmer",
	"rw":      "Kinyarwanda",
	"ko":      "Korean",
	"ku":      "Kurdish (Kurmanji)",
	"ky":      "Kyrgyz",
	"lo":      "Lao",
	"la":      "Latin",
	"lv":      "Latvian",
	"lt":      "Lithuanian",
	"lb":      "Luxembourgish",
	"mk":      "Macedonian",
	"mg":      "Malagasy",
	"ms":      "Malay",
	"ml":      "Malayalam",
	"mt":      "Maltese",
	"mi":      "Maori",
	"mr":      "Marathi",
	"mn":      "Mongolian",
	"my":      "Myanmar (Burmese)",
	"ne":      "Nepali",
	"no":      "Norwegian",
	"or":      "Odia (Oriya)",
	"ps":      "Pashto",
	"fa":      "Persian",
	"pl":      "Polish",
	"pt":      "Portuguese",
	"pa":      "Punjabi",
	"ro":      "Romanian",
	"ru":      "Russian",
	"sm":      "Samoan",
	"gd":      "Scots Gaelic",
	"sr":      "Serbian",
	"st":      "Sesotho",
	"sn":      "Shona",
	"sd":      "Sindhi",
	"si":      "Sinhala",
	"sk":      "Slovak",
	"sl":      "Slovenian",
	"so":      "Somali",
	"es":      "Spanish",
	"su":      "Sundanese",
	"sw":      "Swahili",
	"sv":      "Swedish",
	"tg":      "Tajik",
	"ta":      "Tamil",
	"tt":      "Tatar",
	"te":      "Telugu",
	"th":      "Thai",
	"tr":      "Turkish",
	"tk":      "Turkmen",
	"uk":      "Ukrainian",
	"ur":      "Urdu",
	"ug":      "Uyghur",
	"uz":      "Uzbek",
	"vi":      "Vietnamese",
	"cy":      "Welsh",
	"xh":      "Xhosa",
	"yi":      "Yiddish",
	"yo":      "Yoruba",
	"zu":      "Zulu",
}

// canonical maps a lowercased code to its spelling in names, e.g. zh_hant to zh_HANT.
var canonical = func() map[string]string {
	index := make(map[string]string, len(names)+1)
	for code := range names {
		index[strings.ToLower(code)] = code
	}
	index[Auto] = Auto
	return index
}()

// Lookup resolves a user-typed code case-insensitively and returns its canonical form.
// Auto is resolved too; check it with Supported or SupportedSource.
func Lookup(code string) (string, bool) {
	resolved, ok := canonical[strings.ToLower(strings.TrimSpace(code))]
	return resolved, ok
}

// Name returns the display name for code.
func Name(code string) (string, bool) {
	name, ok := names[code]
	return name, ok
}

// Supported reports whether code can be used as a translation target.
func Supported(code string) bool {
	_, ok := names[code]
	return ok
}

// SupportedSource reports whether code can be used as a translation source.
func SupportedSource(code string) bool {
	return code == Auto || Supported(code)
}

// All returns every target language sorted by display name.
func All() []Language {
	result := make([]Language, 0, len(names))
	for code, name := range names {
		result = append(result, Language{Code: code, Name: name})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
