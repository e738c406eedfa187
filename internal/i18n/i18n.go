// Package i18n は表示言語の設定を扱う
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Localizer は表示言語ごとの文字列を返す。現状は英語のみ
type Localizer struct {
	tag language.Tag
}

// New はロケール文字列からLocalizerを作成する。解析できなければ英語
func New(locale string) *Localizer {
	return &Localizer{tag: ParseLocale(locale)}
}

// ParseLocale はPOSIXまたはBCP 47のロケールを言語タグに変換する
func ParseLocale(locale string) language.Tag {
	s := strings.TrimSpace(locale)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T はsの翻訳を返す
func (l *Localizer) T(s string) string {
	return s
}
