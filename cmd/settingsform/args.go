package main

import "strings"

// Output formats accepted by --format.
const (
	FormatJSON     = "json"
	FormatOpenAPI  = "openapi"
	FormatDocument = "document"
)

type Args struct {
	Schema   string   `arg:"--schema,required" help:"settings schema file or directory (YAML or JSON)"`
	Data     string   `arg:"--data" help:"stored settings record (YAML or JSON); only settings present in it get a field"`
	Disabled []string `arg:"--disabled" help:"settings to leave out of the form, space or comma separated"`
	Format   string   `arg:"--format" default:"json" help:"output format: json, openapi or document"`
	Name     string   `arg:"--name" default:"settings" help:"form name"`
	Preset   string   `arg:"--preset" help:"YAML or JSON field override preset"`
	Locale   string   `arg:"--locale" help:"translate labels for this locale"`
	Catalog  string   `arg:"--catalog" help:"translation catalog used with --locale"`
	Output   string   `arg:"-o,--output" help:"output file (stdout if empty)"`
	Check    bool     `arg:"--check" help:"report every schema problem and exit"`
	Validate bool     `arg:"--validate" help:"validate the stored record against the form and print the issues"`
	Zones    bool     `arg:"--timezones" help:"offer the IANA zone list as choices of timezone settings"`
	Regions  []string `arg:"--timezone-region" help:"limit offered zones to these regions (Europe, America, ...)"`
	Verbose  bool     `arg:"-v,--verbose" help:"log debug details to stderr"`
}

func (Args) Description() string {
	return "settingsform turns a settings schema and a stored settings record into a form description."
}

// DisabledNames flattens --disabled values, accepting comma separated lists.
func (a Args) DisabledNames() []string {
	var out []string
	for _, raw := range a.Disabled {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
