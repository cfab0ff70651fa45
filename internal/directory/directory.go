// Package directory holds the college and institute directory and the
// lookup rules the assistant uses to link users to unit homepages.
package directory

import (
	"strings"
	"unicode/utf8"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
	"github.com/dhuhelper/dhu-portal-go/internal/stringutil"
)

// Entry is one college or institute with its homepage. Aliases cover
// the short forms people actually type.
type Entry struct {
	Name    string        `json:"name"`
	Aliases []string      `json:"aliases,omitempty"`
	URL     string        `json:"url"`
	Campus  campus.Campus `json:"campus"`
}

// Entries lists every unit in fixed display order. Lookups scan in this
// order and the first hit wins.
var Entries = []Entry{
	{Name: "材料科学与工程学院", Aliases: []string{"材料学院"}, URL: "http://esklfpm.dhu.edu.cn/sklfpm/default.jsp", Campus: campus.Songjiang},
	{Name: "服装与艺术设计学院", Aliases: []string{"服装学院", "服设"}, URL: "http://fuzhuang.dhu.edu.cn/", Campus: campus.Yanan},
	{Name: "人文学院", URL: "http://rw.dhu.edu.cn/", Campus: campus.Yanan},
	{Name: "上海国际时尚创意学院", Aliases: []string{"时尚创意学院", "SCF"}, URL: "http://scf.dhu.edu.cn/", Campus: campus.Yanan},
	{Name: "国际文化交流学院", URL: "http://ices.dhu.edu.cn/", Campus: campus.Yanan},
	{Name: "纺织学院", URL: "http://tex.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "旭日工商管理学院", Aliases: []string{"管理学院", "商学院"}, URL: "http://gl.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "机械工程学院", Aliases: []string{"机械学院"}, URL: "http://me.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "信息科学与技术学院", Aliases: []string{"信息学院"}, URL: "http://ist.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "计算机科学与技术学院", Aliases: []string{"计算机学院", "计院"}, URL: "http://jsj.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "化学与化工学院", Aliases: []string{"化工学院"}, URL: "http://chem.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "环境科学与工程学院", Aliases: []string{"环境学院"}, URL: "http://env.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "理学院", URL: "http://hc.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "外语学院", URL: "http://flc.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "马克思主义学院", Aliases: []string{"马院"}, URL: "http://marx.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "生物医学工程学院", Aliases: []string{"生医工"}, URL: "http://bme.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "人工智能研究院", Aliases: []string{"AI研究院"}, URL: "http://ai.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "先进低维材料中心", URL: "http://calm.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "民用航空复合材料中心", URL: "http://ccac.dhu.edu.cn/", Campus: campus.Songjiang},
	{Name: "体育部", URL: "http://tyb.dhu.edu.cn/", Campus: campus.Songjiang},
}

// ByCampus returns the entries homed on the given campus, or all entries
// when c is not a valid campus.
func ByCampus(c campus.Campus) []Entry {
	if !c.Valid() {
		out := make([]Entry, len(Entries))
		copy(out, Entries)
		return out
	}
	var out []Entry
	for _, e := range Entries {
		if e.Campus == c {
			out = append(out, e)
		}
	}
	return out
}

// Find matches a classifier-provided unit name, case-insensitively.
// The entry name or one of its aliases must contain the query, so
// partial names like 计算机 resolve. Queries of two or more runes that
// match no entry as a substring fall back to scattered-character
// matching, so abbreviations like 计科 still resolve.
func Find(name string) (Entry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Entry{}, false
	}
	for _, e := range Entries {
		if strings.Contains(strings.ToLower(e.Name), name) {
			return e, true
		}
		for _, alias := range e.Aliases {
			if strings.Contains(strings.ToLower(alias), name) {
				return e, true
			}
		}
	}
	if utf8.RuneCountInString(name) >= 2 {
		for _, e := range Entries {
			if stringutil.ContainsAllRunes(e.Name, name) {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// FindInText matches free text against the directory. For each entry,
// in order: the full name, any alias, then the name with the 学院
// suffix dropped when the remainder is still distinctive enough.
func FindInText(text string) (Entry, bool) {
	text = strings.ToLower(text)
	if text == "" {
		return Entry{}, false
	}
	for _, e := range Entries {
		if strings.Contains(text, strings.ToLower(e.Name)) {
			return e, true
		}
		for _, alias := range e.Aliases {
			if strings.Contains(text, strings.ToLower(alias)) {
				return e, true
			}
		}
		if utf8.RuneCountInString(e.Name) > 3 {
			short := strings.ReplaceAll(e.Name, "学院", "")
			if utf8.RuneCountInString(short) >= 2 && strings.Contains(text, strings.ToLower(short)) {
				return e, true
			}
		}
	}
	return Entry{}, false
}
