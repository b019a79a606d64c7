package layout

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	zh   = language.MustParseBase("zh")
	hans = language.MustParseScript("Hans")
	hant = language.MustParseScript("Hant")
)

// hanScripts - короткие имена китайских письменностей, как их пишет Windows.
// CLDR называет их "Simplified Han" и "Traditional Han".
var hanScripts = map[string]map[language.Script]string{
	"en": {hans: "Simplified", hant: "Traditional"},
	"ru": {hans: "упрощенное письмо", hant: "традиционное письмо"},
}

// Namer строит коды и отображаемые имена языков на заданном языке интерфейса.
type Namer struct {
	langs   display.Namer
	scripts display.Namer
	regions display.Namer
	han     map[language.Script]string
}

// NewNamer создаёт Namer для языка интерфейса ui.
func NewNamer(ui language.Tag) *Namer {
	base, _ := ui.Base()
	return &Namer{
		langs:   display.Languages(ui),
		scripts: display.Scripts(ui),
		regions: display.Regions(ui),
		han:     hanScripts[base.String()],
	}
}

// Language разбирает имя локали ("en-US", "sr-Latn-RS") в Language.
func (n *Namer) Language(localeName string) (Language, error) {
	tag, err := language.Parse(localeName)
	if err != nil {
		return Unknown(), fmt.Errorf("parse locale %q: %w", localeName, err)
	}
	base, conf := tag.Base()
	if conf == language.No {
		return Unknown(), fmt.Errorf("locale %q: %w", localeName, ErrUnknownLocale)
	}
	return Language{
		Code:        Code(strings.ToUpper(base.String())),
		Tag:         tag,
		DisplayName: n.DisplayName(tag),
	}, nil
}

// DisplayName возвращает имя вида "English (United States)".
// Письменность и регион добавляются, только если они явно указаны в теге.
// У китайского с регионом письменность выводится из региона: zh-TW - "Traditional".
func (n *Namer) DisplayName(tag language.Tag) string {
	base, _ := tag.Base()
	name := n.langs.Name(base)
	if name == "" {
		name = base.String()
	}

	region, regionConf := tag.Region()

	var details []string
	script, conf := tag.Script()
	if conf == language.Exact || (base == zh && regionConf == language.Exact && conf != language.No) {
		if s := n.scriptName(script); s != "" {
			details = append(details, s)
		}
	}
	if regionConf == language.Exact {
		if r := n.regions.Name(region); r != "" {
			details = append(details, r)
		}
	}

	if len(details) == 0 {
		return name
	}
	return name + " (" + strings.Join(details, ", ") + ")"
}

func (n *Namer) scriptName(script language.Script) string {
	if s, ok := n.han[script]; ok {
		return s
	}
	return n.scripts.Name(script)
}
