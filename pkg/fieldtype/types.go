package fieldtype

import "sort"

// ID identifies a concrete field implementation understood by the host form
// layer. Core identifiers use the `core.<Name>Type` namespace.
type ID string

// String returns the identifier as a plain string.
func (id ID) String() string { return string(id) }

// Core field-type identifiers.
const (
	Base       ID = "core.BaseType"
	Birthday   ID = "core.BirthdayType"
	Button     ID = "core.ButtonType"
	Checkbox   ID = "core.CheckboxType"
	Choice     ID = "core.ChoiceType"
	Collection ID = "core.CollectionType"
	Country    ID = "core.CountryType"
	Currency   ID = "core.CurrencyType"
	Date       ID = "core.DateType"
	DateTime   ID = "core.DateTimeType"
	Email      ID = "core.EmailType"
	File       ID = "core.FileType"
	Form       ID = "core.FormType"
	Hidden     ID = "core.HiddenType"
	Integer    ID = "core.IntegerType"
	Language   ID = "core.LanguageType"
	Locale     ID = "core.LocaleType"
	Money      ID = "core.MoneyType"
	Number     ID = "core.NumberType"
	Password   ID = "core.PasswordType"
	Percent    ID = "core.PercentType"
	Radio      ID = "core.RadioType"
	Range      ID = "core.RangeType"
	Repeated   ID = "core.RepeatedType"
	Reset      ID = "core.ResetType"
	Search     ID = "core.SearchType"
	Submit     ID = "core.SubmitType"
	Text       ID = "core.TextType"
	Textarea   ID = "core.TextareaType"
	Time       ID = "core.TimeType"
	Timezone   ID = "core.TimezoneType"
	URL        ID = "core.UrlType"
)

// table maps short tokens to core identifiers. It is never written after
// package initialisation.
var table = map[string]ID{
	"base":       Base,
	"birthday":   Birthday,
	"button":     Button,
	"checkbox":   Checkbox,
	"choice":     Choice,
	"collection": Collection,
	"country":    Country,
	"currency":   Currency,
	"date":       Date,
	"datetime":   DateTime,
	"email":      Email,
	"file":       File,
	"form":       Form,
	"hidden":     Hidden,
	"integer":    Integer,
	"language":   Language,
	"locale":     Locale,
	"money":      Money,
	"number":     Number,
	"password":   Password,
	"percent":    Percent,
	"radio":      Radio,
	"range":      Range,
	"repeated":   Repeated,
	"reset":      Reset,
	"search":     Search,
	"submit":     Submit,
	"text":       Text,
	"textarea":   Textarea,
	"time":       Time,
	"timezone":   Timezone,
	"url":        URL,
}

var coreIDs = func() map[ID]struct{} {
	out := make(map[ID]struct{}, len(table))
	for _, id := range table {
		out[id] = struct{}{}
	}
	return out
}()

// Lookup returns the core identifier registered for a short token.
func Lookup(token string) (ID, bool) {
	id, ok := table[token]
	return id, ok
}

// IsCore reports whether id is one of the built-in core identifiers.
func IsCore(id ID) bool {
	_, ok := coreIDs[id]
	return ok
}

// Tokens returns the recognised short tokens in lexical order.
func Tokens() []string {
	out := make([]string, 0, len(table))
	for token := range table {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// Table returns a copy of the token table.
func Table() map[string]ID {
	out := make(map[string]ID, len(table))
	for token, id := range table {
		out[token] = id
	}
	return out
}
