package constraint

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Namespaces every built-in is also registered under. Settings files name
// constraints by class, either through the conventional `Assert\` alias or
// fully qualified, so `NotBlank`, `Assert\NotBlank` and
// `Symfony\Component\Validator\Constraints\NotBlank` share a constructor.
const (
	QualifiedPrefix = `Assert\`
	ClassPrefix     = `Symfony\Component\Validator\Constraints\`
)

// Built-in constraint kinds.
const (
	KindNotBlank       = "NotBlank"
	KindNotNull        = "NotNull"
	KindBlank          = "Blank"
	KindLength         = "Length"
	KindRange          = "Range"
	KindRegex          = "Regex"
	KindEmail          = "Email"
	KindURL            = "Url"
	KindChoice         = "Choice"
	KindCount          = "Count"
	KindPositive       = "Positive"
	KindPositiveOrZero = "PositiveOrZero"
	KindNegative       = "Negative"
	KindNegativeOrZero = "NegativeOrZero"
	KindLocale         = "Locale"
	KindTimezone       = "Timezone"
)

func registerBuiltins(reg *Registry) {
	builtins := map[string]Constructor{
		KindNotBlank:       newNotBlank,
		KindNotNull:        newNotNull,
		KindBlank:          newBlank,
		KindLength:         newLength,
		KindRange:          newRange,
		KindRegex:          newRegex,
		KindEmail:          newEmail,
		KindURL:            newURL,
		KindChoice:         newChoice,
		KindCount:          newCount,
		KindPositive:       signConstructor(KindPositive, func(f float64) bool { return f > 0 }, "This value should be positive."),
		KindPositiveOrZero: signConstructor(KindPositiveOrZero, func(f float64) bool { return f >= 0 }, "This value should be either positive or zero."),
		KindNegative:       signConstructor(KindNegative, func(f float64) bool { return f < 0 }, "This value should be negative."),
		KindNegativeOrZero: signConstructor(KindNegativeOrZero, func(f float64) bool { return f <= 0 }, "This value should be either negative or zero."),
		KindLocale:         newLocale,
		KindTimezone:       newTimezone,
	}
	for kind, ctor := range builtins {
		reg.MustRegister(kind, ctor)
		reg.MustRegister(QualifiedPrefix+kind, ctor)
		reg.MustRegister(ClassPrefix+kind, ctor)
	}
}

// NotBlank rejects nil, empty strings, empty collections and false.
type NotBlank struct {
	Message   string
	AllowNull bool
}

func newNotBlank(params map[string]any) (Constraint, error) {
	allowNull, err := boolParam(params, "allowNull", false)
	if err != nil {
		return nil, err
	}
	message, _ := stringParam(params, "message")
	return &NotBlank{Message: message, AllowNull: allowNull}, nil
}

func (c *NotBlank) Kind() string { return KindNotBlank }

func (c *NotBlank) Params() map[string]any {
	out := map[string]any{}
	if c.AllowNull {
		out["allowNull"] = true
	}
	return out
}

func (c *NotBlank) Validate(value any) error {
	if value == nil && c.AllowNull {
		return nil
	}
	blank := false
	switch v := value.(type) {
	case nil:
		blank = true
	case string:
		blank = v == ""
	case bool:
		blank = !v
	default:
		if n, ok := collectionLen(value); ok {
			blank = n == 0
		}
	}
	if blank {
		return violation(KindNotBlank, c.Message, "This value should not be blank.")
	}
	return nil
}

// NotNull rejects nil.
type NotNull struct {
	Message string
}

func newNotNull(params map[string]any) (Constraint, error) {
	message, _ := stringParam(params, "message")
	return &NotNull{Message: message}, nil
}

func (c *NotNull) Kind() string           { return KindNotNull }
func (c *NotNull) Params() map[string]any { return map[string]any{} }

func (c *NotNull) Validate(value any) error {
	if value == nil {
		return violation(KindNotNull, c.Message, "This value should not be null.")
	}
	return nil
}

// Blank only accepts nil or the empty string.
type Blank struct {
	Message string
}

func newBlank(params map[string]any) (Constraint, error) {
	message, _ := stringParam(params, "message")
	return &Blank{Message: message}, nil
}

func (c *Blank) Kind() string           { return KindBlank }
func (c *Blank) Params() map[string]any { return map[string]any{} }

func (c *Blank) Validate(value any) error {
	if isEmpty(value) {
		return nil
	}
	return violation(KindBlank, c.Message, "This value should be blank.")
}

// Length bounds the character count of a string value.
type Length struct {
	Min     *int
	Max     *int
	Message string
}

func newLength(params map[string]any) (Constraint, error) {
	c := &Length{}
	if exact, ok, err := intParam(params, "value"); err != nil {
		return nil, err
	} else if ok {
		c.Min, c.Max = &exact, &exact
	}
	if exact, ok, err := intParam(params, "exactly"); err != nil {
		return nil, err
	} else if ok {
		c.Min, c.Max = &exact, &exact
	}
	if lower, ok, err := intParam(params, "min"); err != nil {
		return nil, err
	} else if ok {
		c.Min = &lower
	}
	if upper, ok, err := intParam(params, "max"); err != nil {
		return nil, err
	} else if ok {
		c.Max = &upper
	}
	if c.Min == nil && c.Max == nil {
		return nil, errors.New(`either "min" or "max" must be set`)
	}
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		return nil, fmt.Errorf("min %d is greater than max %d", *c.Min, *c.Max)
	}
	c.Message, _ = stringParam(params, "message")
	return c, nil
}

func (c *Length) Kind() string { return KindLength }

func (c *Length) Params() map[string]any {
	out := map[string]any{}
	if c.Min != nil {
		out["min"] = *c.Min
	}
	if c.Max != nil {
		out["max"] = *c.Max
	}
	return out
}

func (c *Length) Validate(value any) error {
	if isEmpty(value) {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		str = fmt.Sprint(value)
	}
	count := utf8.RuneCountInString(str)
	if c.Min != nil && count < *c.Min {
		return violation(KindLength, c.Message, fmt.Sprintf("This value is too short. It should have %d characters or more.", *c.Min))
	}
	if c.Max != nil && count > *c.Max {
		return violation(KindLength, c.Message, fmt.Sprintf("This value is too long. It should have %d characters or less.", *c.Max))
	}
	return nil
}

// Range bounds a numeric value.
type Range struct {
	Min     *float64
	Max     *float64
	Message string
}

func newRange(params map[string]any) (Constraint, error) {
	c := &Range{}
	if lower, ok, err := floatParam(params, "min"); err != nil {
		return nil, err
	} else if ok {
		c.Min = &lower
	}
	if upper, ok, err := floatParam(params, "max"); err != nil {
		return nil, err
	} else if ok {
		c.Max = &upper
	}
	if c.Min == nil && c.Max == nil {
		return nil, errors.New(`either "min" or "max" must be set`)
	}
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		return nil, fmt.Errorf("min %v is greater than max %v", *c.Min, *c.Max)
	}
	c.Message, _ = stringParam(params, "message")
	return c, nil
}

func (c *Range) Kind() string { return KindRange }

func (c *Range) Params() map[string]any {
	out := map[string]any{}
	if c.Min != nil {
		out["min"] = *c.Min
	}
	if c.Max != nil {
		out["max"] = *c.Max
	}
	return out
}

func (c *Range) Validate(value any) error {
	if isEmpty(value) {
		return nil
	}
	f, ok := toFloat(value)
	if !ok {
		return violation(KindRange, "", "This value should be a valid number.")
	}
	if c.Min != nil && f < *c.Min {
		return violation(KindRange, c.Message, fmt.Sprintf("This value should be %v or more.", *c.Min))
	}
	if c.Max != nil && f > *c.Max {
		return violation(KindRange, c.Message, fmt.Sprintf("This value should be %v or less.", *c.Max))
	}
	return nil
}

// Regex matches string values against a pattern. Delimited patterns such as
// `/^[a-z]+$/i` are accepted; the `i`, `m` and `s` flags are honoured.
type Regex struct {
	Pattern string
	Match   bool
	Message string
	re      *regexp.Regexp
}

func newRegex(params map[string]any) (Constraint, error) {
	pattern, ok := stringParam(params, "pattern", "value")
	if !ok || pattern == "" {
		return nil, errors.New(`"pattern" is required`)
	}
	match, err := boolParam(params, "match", true)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(stripDelimiters(pattern))
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	message, _ := stringParam(params, "message")
	return &Regex{Pattern: pattern, Match: match, Message: message, re: re}, nil
}

func stripDelimiters(pattern string) string {
	if len(pattern) < 2 || pattern[0] != '/' {
		return pattern
	}
	end := strings.LastIndex(pattern, "/")
	if end <= 0 {
		return pattern
	}
	body, flags := pattern[1:end], pattern[end+1:]
	var goFlags strings.Builder
	for _, flag := range flags {
		switch flag {
		case 'i', 'm', 's':
			goFlags.WriteRune(flag)
		}
	}
	if goFlags.Len() == 0 {
		return body
	}
	return "(?" + goFlags.String() + ")" + body
}

// Expression returns the compiled pattern in Go regexp syntax.
func (c *Regex) Expression() string { return c.re.String() }

func (c *Regex) Kind() string { return KindRegex }

func (c *Regex) Params() map[string]any {
	out := map[string]any{"pattern": c.Pattern}
	if !c.Match {
		out["match"] = false
	}
	return out
}

func (c *Regex) Validate(value any) error {
	if isEmpty(value) {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		str = fmt.Sprint(value)
	}
	if c.re.MatchString(str) != c.Match {
		return violation(KindRegex, c.Message, "This value is not valid.")
	}
	return nil
}

// Email accepts a single RFC 5322 address without display name.
type Email struct {
	Message string
}

func newEmail(params map[string]any) (Constraint, error) {
	message, _ := stringParam(params, "message")
	return &Email{Message: message}, nil
}

func (c *Email) Kind() string           { return KindEmail }
func (c *Email) Params() map[string]any { return map[string]any{} }

func (c *Email) Validate(value any) error {
	if isEmpty(value) {
		return nil
	}
	str := fmt.Sprint(value)
	addr, err := mail.ParseAddress(str)
	if err != nil || addr.Address != str {
		return violation(KindEmail, c.Message, "This value is not a valid email address.")
	}
	return nil
}

// URL accepts absolute URLs using one of the allowed protocols.
type URL struct {
	Protocols []string
	Message   string
}

func newURL(params map[string]any) (Constraint, error) {
	c := &URL{Protocols: []string{"http", "https"}}
	if raw, ok := sliceParam(params, "protocols"); ok {
		c.Protocols = c.Protocols[:0]
		for _, p := range raw {
			c.Protocols = append(c.Protocols, strings.ToLower(fmt.Sprint(p)))
		}
	}
	c.Message, _ = stringParam(params, "message")
	return c, nil
}

func (c *URL) Kind() string { return KindURL }

func (c *URL) Params() map[string]any {
	return map[string]any{"protocols": append([]string(nil), c.Protocols...)}
}

func (c *URL) Validate(value any) error {
	if isEmpty(value) {
		return nil
	}
	parsed, err := url.Parse(fmt.Sprint(value))
	if err != nil || parsed.Host == "" {
		return violation(KindURL, c.Message, "This value is not a valid URL.")
	}
	for _, protocol := range c.Protocols {
		if strings.EqualFold(parsed.Scheme, protocol) {
			return nil
		}
	}
	return violation(KindURL, c.Message, "This value is not a valid URL.")
}

// Choice restricts values to a fixed list.
type Choice struct {
	Choices  []any
	Multiple bool
	Message  string
}

func newChoice(params map[string]any) (Constraint, error) {
	choices, ok := sliceParam(params, "choices", "value")
	if !ok || len(choices) == 0 {
		return nil, errors.New(`"choices" is required`)
	}
	multiple, err := boolParam(params, "multiple", false)
	if err != nil {
		return nil, err
	}
	message, _ := stringParam(params, "message")
	return &Choice{Choices: choices, Multiple: multiple, Message: message}, nil
}

func (c *Choice) Kind() string { return KindChoice }

func (c *Choice) Params() map[string]any {
	out := map[string]any{"choices": append([]any(nil), c.Choices...)}
	if c.Multiple {
		out["multiple"] = true
	}
	return out
}

func (c *Choice) Validate(value any) error {
	if value == nil {
		return nil
	}
	if !c.Multiple {
		if c.allowed(value) {
			return nil
		}
		return violation(KindChoice, c.Message, "The value you selected is not a valid choice.")
	}
	values, ok := value.([]any)
	if !ok {
		if strs, isStrings := value.([]string); isStrings {
			for _, s := range strs {
				values = append(values, s)
			}
			ok = true
		}
	}
	if !ok {
		return violation(KindChoice, c.Message, "This value should be a list of choices.")
	}
	for _, item := range values {
		if !c.allowed(item) {
			return violation(KindChoice, c.Message, "One or more of the given values is invalid.")
		}
	}
	return nil
}

func (c *Choice) allowed(value any) bool {
	for _, choice := range c.Choices {
		if sameValue(choice, value) {
			return true
		}
	}
	return false
}

// Count bounds the number of elements in a list or map.
type Count struct {
	Min     *int
	Max     *int
	Message string
}

func newCount(params map[string]any) (Constraint, error) {
	c := &Count{}
	if lower, ok, err := intParam(params, "min"); err != nil {
		return nil, err
	} else if ok {
		c.Min = &lower
	}
	if upper, ok, err := intParam(params, "max"); err != nil {
		return nil, err
	} else if ok {
		c.Max = &upper
	}
	if c.Min == nil && c.Max == nil {
		return nil, errors.New(`either "min" or "max" must be set`)
	}
	c.Message, _ = stringParam(params, "message")
	return c, nil
}

func (c *Count) Kind() string { return KindCount }

func (c *Count) Params() map[string]any {
	out := map[string]any{}
	if c.Min != nil {
		out["min"] = *c.Min
	}
	if c.Max != nil {
		out["max"] = *c.Max
	}
	return out
}

func (c *Count) Validate(value any) error {
	if value == nil {
		return nil
	}
	n, ok := collectionLen(value)
	if !ok {
		return violation(KindCount, "", "This value should be a collection.")
	}
	if c.Min != nil && n < *c.Min {
		return violation(KindCount, c.Message, fmt.Sprintf("This collection should contain %d elements or more.", *c.Min))
	}
	if c.Max != nil && n > *c.Max {
		return violation(KindCount, c.Message, fmt.Sprintf("This collection should contain %d elements or less.", *c.Max))
	}
	return nil
}

// Sign compares a numeric value against zero.
type Sign struct {
	kind    string
	check   func(float64) bool
	message string
}

func signConstructor(kind string, check func(float64) bool, fallback string) Constructor {
	return func(params map[string]any) (Constraint, error) {
		message, _ := stringParam(params, "message")
		if message == "" {
			message = fallback
		}
		return &Sign{kind: kind, check: check, message: message}, nil
	}
}

func (c *Sign) Kind() string           { return c.kind }
func (c *Sign) Params() map[string]any { return map[string]any{} }

func (c *Sign) Validate(value any) error {
	if isEmpty(value) {
		return nil
	}
	f, ok := toFloat(value)
	if !ok || !c.check(f) {
		return violation(c.kind, c.message, c.message)
	}
	return nil
}

// Locale accepts BCP 47 language tags.
type Locale struct {
	Message string
}

func newLocale(params map[string]any) (Constraint, error) {
	message, _ := stringParam(params, "message")
	return &Locale{Message: message}, nil
}

func (c *Locale) Kind() string           { return KindLocale }
func (c *Locale) Params() map[string]any { return map[string]any{} }

func (c *Locale) Validate(value any) error {
	if isEmpty(value) {
		return nil
	}
	if _, err := language.Parse(fmt.Sprint(value)); err != nil {
		return violation(KindLocale, c.Message, "This value is not a valid locale.")
	}
	return nil
}

// Timezone accepts IANA time zone names.
type Timezone struct {
	Message string
}

func newTimezone(params map[string]any) (Constraint, error) {
	message, _ := stringParam(params, "message")
	return &Timezone{Message: message}, nil
}

func (c *Timezone) Kind() string           { return KindTimezone }
func (c *Timezone) Params() map[string]any { return map[string]any{} }

func (c *Timezone) Validate(value any) error {
	if isEmpty(value) {
		return nil
	}
	name := fmt.Sprint(value)
	if name == "Local" {
		return violation(KindTimezone, c.Message, "This value is not a valid timezone.")
	}
	if _, err := time.LoadLocation(name); err != nil {
		return violation(KindTimezone, c.Message, "This value is not a valid timezone.")
	}
	return nil
}
