package render

import (
	"os"

	"golang.org/x/text/language"
)

// Supported display languages. English is the fallback.
var supported = []language.Tag{
	language.English,
	language.Japanese,
}

var matcher = language.NewMatcher(supported)

// text is a message keyed by base language, after shibaleo-style
// LocalizedText maps.
type text map[language.Tag]string

func (t text) in(tag language.Tag) string {
	if s, ok := t[tag]; ok {
		return s
	}
	return t[language.English]
}

var (
	msgTruncated = text{
		language.English:  "_Showing first %d of %d rows (%d hidden)._",
		language.Japanese: "_全%[2]d行のうち先頭%[1]d行を表示しています（%[3]d行は非表示）。_",
	}
	msgNoData = text{
		language.English:  "_No data found._",
		language.Japanese: "_データが見つかりませんでした。_",
	}
	msgNoFormatting = text{
		language.English:  "_No formatting data found in this range._",
		language.Japanese: "_この範囲に書式データはありません。_",
	}
	msgNotFoundGuidance = text{
		language.English:  "The spreadsheet, sheet or range could not be found. Check the spreadsheet ID and the range notation.",
		language.Japanese: "スプレッドシート・シート・範囲が見つかりません。スプレッドシートIDと範囲の指定を確認してください。",
	}
	msgPermissionGuidance = text{
		language.English:  "Permission denied. Share the spreadsheet with the service account email and try again.",
		language.Japanese: "アクセス権がありません。サービスアカウントのメールアドレスにスプレッドシートを共有してください。",
	}
)

// DetectLanguage picks the display language from MCP_LANG, falling back to
// LANG, falling back to English.
func DetectLanguage() language.Tag {
	for _, env := range []string{"MCP_LANG", "LANG"} {
		raw := os.Getenv(env)
		if raw == "" {
			continue
		}
		if tag, err := language.Parse(normalizeLocale(raw)); err == nil {
			matched, _, conf := matcher.Match(tag)
			if conf > language.No {
				base, _ := matched.Base()
				return language.Make(base.String())
			}
		}
	}
	return language.English
}

// normalizeLocale strips POSIX locale suffixes such as ".UTF-8" so the value
// parses as a BCP47 tag.
func normalizeLocale(raw string) string {
	for i, r := range raw {
		if r == '.' || r == '@' {
			return raw[:i]
		}
	}
	return raw
}
