package locale

import "strings"

// keyword maps an ICU keyword name to its BCP 47 unicode extension key.
var keywordKeys = map[string]string{
	"calendar":         "ca",
	"collation":        "co",
	"currency":         "cu",
	"numbers":          "nu",
	"hours":            "hc",
	"timezone":         "tz",
	"colalternate":     "ka",
	"colbackwards":     "kb",
	"colcaselevel":     "kc",
	"colcasefirst":     "kf",
	"colnormalization": "kk",
	"colnumeric":       "kn",
	"colreorder":       "kr",
	"colstrength":      "ks",
	"measure":          "ms",
	"lb":               "lb",
	"lw":               "lw",
	"fw":               "fw",
	"em":               "em",
	"va":               "va",
	"rg":               "rg",
	"sd":               "sd",
}

var keyNames = func() map[string]string {
	m := make(map[string]string, len(keywordKeys))
	for name, key := range keywordKeys {
		m[key] = name
	}
	return m
}()

// keywordValues maps ICU values to BCP 47 types where they differ.
var keywordValues = map[string]map[string]string{
	"co": {"phonebook": "phonebk", "dictionary": "dict", "traditional": "trad", "gb2312han": "gb2312"},
	"ca": {"gregorian": "gregory", "ethiopic-amete-alem": "ethioaa", "islamic-civil": "islamic-civil"},
	"ks": {"primary": "level1", "secondary": "level2", "tertiary": "level3", "quaternary": "level4", "identical": "identic"},
	"ka": {"non-ignorable": "noignore", "shifted": "shifted"},
	"kb": {"yes": "true", "no": "false"},
	"kc": {"yes": "true", "no": "false"},
	"kk": {"yes": "true", "no": "false"},
	"kn": {"yes": "true", "no": "false"},
	"ms": {"imperial": "uksystem"},
}

var typeValues = func() map[string]map[string]string {
	m := make(map[string]map[string]string, len(keywordValues))
	for key, values := range keywordValues {
		inv := make(map[string]string, len(values))
		for icu, bcp := range values {
			inv[bcp] = icu
		}
		m[key] = inv
	}
	return m
}()

// bcpKey returns the extension key for an ICU keyword name. Two-letter names
// are taken as keys.
func bcpKey(name string) (string, bool) {
	name = strings.ToLower(name)
	if key, ok := keywordKeys[name]; ok {
		return key, true
	}
	if len(name) == 2 {
		return name, true
	}
	return "", false
}

func keywordName(key string) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	return key
}

func bcpType(key, value string) string {
	value = strings.ToLower(value)
	if t, ok := keywordValues[key][value]; ok {
		return t
	}
	return value
}

func icuValue(key, typ string) string {
	if v, ok := typeValues[key][typ]; ok {
		return v
	}
	return typ
}
