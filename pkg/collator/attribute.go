package collator

// Strength is the comparison level.
type Strength int

const (
	DefaultStrength Strength = -1
	Primary         Strength = 0
	Secondary       Strength = 1
	Tertiary        Strength = 2
	Quaternary      Strength = 3
	Identical       Strength = 15
)

func (s Strength) valid() bool {
	switch s {
	case DefaultStrength, Primary, Secondary, Tertiary, Quaternary, Identical:
		return true
	}
	return false
}

// Attribute is a tunable of the collator.
type Attribute int

const (
	FrenchCollation Attribute = iota
	AlternateHandling
	CaseFirst
	CaseLevel
	NormalizationMode
	StrengthAttribute
	HiraganaQuaternaryMode
	NumericCollation
)

// Value is the value of an Attribute.
type Value int

const (
	Default      Value = -1
	PrimaryV     Value = 0
	SecondaryV   Value = 1
	TertiaryV    Value = 2
	QuaternaryV  Value = 3
	IdenticalV   Value = 15
	Off          Value = 16
	On           Value = 17
	Shifted      Value = 20
	NonIgnorable Value = 21
	LowerFirst   Value = 24
	UpperFirst   Value = 25
)

// Result is the outcome of a comparison.
type Result int

const (
	Less    Result = -1
	Equal   Result = 0
	Greater Result = 1
)

// settings are the attribute values of a collator; Default means "as the
// locale says".
type settings struct {
	strength      Strength
	french        Value
	alternate     Value
	caseFirst     Value
	caseLevel     Value
	normalization Value
	hiragana      Value
	numeric       Value
}

func defaultSettings() settings {
	return settings{
		strength:      DefaultStrength,
		french:        Default,
		alternate:     Default,
		caseFirst:     Default,
		caseLevel:     Default,
		normalization: Default,
		hiragana:      Default,
		numeric:       Default,
	}
}

func onOff(v Value) bool {
	return v == Default || v == On || v == Off
}

func (s *settings) set(a Attribute, v Value) bool {
	switch a {
	case FrenchCollation:
		if !onOff(v) {
			return false
		}
		s.french = v
	case AlternateHandling:
		if v != Default && v != Shifted && v != NonIgnorable {
			return false
		}
		s.alternate = v
	case CaseFirst:
		if v != Default && v != Off && v != LowerFirst && v != UpperFirst {
			return false
		}
		s.caseFirst = v
	case CaseLevel:
		if !onOff(v) {
			return false
		}
		s.caseLevel = v
	case NormalizationMode:
		if !onOff(v) {
			return false
		}
		s.normalization = v
	case HiraganaQuaternaryMode:
		if !onOff(v) {
			return false
		}
		s.hiragana = v
	case NumericCollation:
		if !onOff(v) {
			return false
		}
		s.numeric = v
	case StrengthAttribute:
		st := Strength(v)
		if !st.valid() {
			return false
		}
		s.strength = st
	default:
		return false
	}
	return true
}

func (s settings) get(a Attribute) (Value, bool) {
	switch a {
	case FrenchCollation:
		return s.french, true
	case AlternateHandling:
		return s.alternate, true
	case CaseFirst:
		return s.caseFirst, true
	case CaseLevel:
		return s.caseLevel, true
	case NormalizationMode:
		return s.normalization, true
	case HiraganaQuaternaryMode:
		return s.hiragana, true
	case NumericCollation:
		return s.numeric, true
	case StrengthAttribute:
		return Value(s.effectiveStrength()), true
	}
	return 0, false
}

func (s settings) effectiveStrength() Strength {
	if s.strength == DefaultStrength {
		return Tertiary
	}
	return s.strength
}
