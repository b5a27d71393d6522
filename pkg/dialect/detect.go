package dialect

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Format is the structural family of a document, orthogonal to its
// language: the same English text is segmented differently for New
// Zealand acts, Hong Kong ordinances and US code titles.
type Format string

const (
	FormatStandard Format = "standard"
	FormatNZ       Format = "nz"
	FormatHK       Format = "hk"
	FormatUS       Format = "us"
	FormatFrance   Format = "france"
)

var cjkPattern = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)

// foldPath lowercases a path, unifies separators and applies NFC so
// keyword matching survives macOS NFD filenames.
func foldPath(path string) string {
	p := strings.ReplaceAll(path, "\\", "/")
	p = norm.NFC.String(p)
	return strings.ToLower(p)
}

// DetectLanguage infers the document language from its path. Taiwanese
// sources come in both Chinese and English editions, distinguished by
// CJK characters in the filename.
func DetectLanguage(path string) Language {
	p := foldPath(path)

	if strings.Contains(p, "korea") {
		return LangKorean
	}
	if strings.Contains(p, "taiwan") {
		if cjkPattern.MatchString(filepath.Base(path)) {
			return LangChinese
		}
		return LangEnglish
	}
	if strings.Contains(p, "france") || strings.Contains(p, "français") || strings.Contains(p, "francais") {
		return LangFrench
	}
	return LangEnglish
}

// DetectFormat infers the structural format from the path.
func DetectFormat(path string) Format {
	if path == "" {
		return FormatStandard
	}
	p := foldPath(path)
	base := strings.ToLower(norm.NFC.String(filepath.Base(path)))

	switch {
	case strings.Contains(p, "newzealand"):
		return FormatNZ
	case strings.Contains(p, "hongkong"), strings.Contains(p, "hong kong"), strings.Contains(base, "cap "):
		return FormatHK
	case strings.Contains(p, "usa"):
		return FormatUS
	case strings.Contains(p, "france"), strings.Contains(p, "français"), strings.Contains(p, "francais"):
		return FormatFrance
	}
	return FormatStandard
}

// countryKeywords maps filename keywords to a country label, most
// specific first. Used by the CLI to report routing decisions.
var countryKeywords = []struct {
	Country  string
	Keywords []string
}{
	{"japan", []string{"japan", "일본", "334ac"}},
	{"china", []string{"china", "중국", "cnipa"}},
	{"usa", []string{"usa", "united states", "미국", "title35", "westlaw"}},
	{"epc", []string{"epc", "european patent"}},
	{"eu", []string{"eu_", "유럽연합"}},
	{"germany", []string{"germany", "독일", "bjnr"}},
	{"uk", []string{"uk", "united kingdom", "영국"}},
	{"france", []string{"france", "프랑스"}},
	{"russia", []string{"russia", "러시아"}},
	{"taiwan", []string{"taiwan", "대만"}},
	{"hongkong", []string{"hongkong", "hong kong", "홍콩", "cap "}},
	{"newzealand", []string{"newzealand", "new zealand", "뉴질랜드"}},
	{"korea", []string{"korea", "한국"}},
}

// DetectCountry returns the country label matched by the filename, or
// an empty string.
func DetectCountry(filename string) string {
	name := strings.ToLower(norm.NFC.String(filename))
	for _, ck := range countryKeywords {
		for _, kw := range ck.Keywords {
			if strings.Contains(name, kw) {
				return ck.Country
			}
		}
	}
	return ""
}
