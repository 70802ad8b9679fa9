// Package catalog loads the localized string table used for labels, save
// summaries and error messages.
//
// A Bundle is built once by the caller and passed to whatever needs it; it is
// never mutated after loading.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

type localeFile struct {
	Locale    string
	Namespace string
	Messages  map[string]string
}

type localeTable struct {
	namespaces map[string]map[string]string
	messages   map[string]string
}

// Bundle is an immutable set of localized strings grouped by locale and namespace.
type Bundle struct {
	locales map[string]*localeTable
	tags    []language.Tag
	matcher language.Matcher
	printer catalog.Catalog
}

// LoadEmbedded loads the string tables shipped with the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]*localeTable{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		file, err := parseLocaleFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if err := b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) add(p string, file localeFile) error {
	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))

	switch {
	case file.Locale != dirLocale:
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, file.Locale, dirLocale)
	case file.Namespace != fileNamespace:
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, file.Namespace, fileNamespace)
	}

	table, ok := b.locales[file.Locale]
	if !ok {
		table = &localeTable{namespaces: map[string]map[string]string{}, messages: map[string]string{}}
		b.locales[file.Locale] = table
	}
	if _, exists := table.namespaces[file.Namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", p, file.Namespace, file.Locale)
	}

	ns := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		if _, dup := table.messages[key]; dup {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, file.Locale)
		}
		table.messages[key] = value
		ns[key] = value
	}
	table.namespaces[file.Namespace] = ns
	return nil
}

// build prepares the x/text catalog and matcher. The base locale is first so
// the matcher falls back to it.
func (b *Bundle) build() error {
	builder := catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	locales := b.Locales()
	sort.SliceStable(locales, func(i, j int) bool { return locales[i] == BaseLocale && locales[j] != BaseLocale })

	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		b.tags = append(b.tags, tag)
		for key, value := range b.locales[locale].messages {
			if err := builder.SetString(tag, key, value); err != nil {
				return fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	b.printer = builder
	return nil
}

// Match resolves a requested locale (for example "pt" or "en-GB") to the
// closest locale this bundle defines.
func (b *Bundle) Match(locale string) string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return BaseLocale
	}
	_, index, confidence := b.matcher.Match(tag)
	if confidence == language.No {
		return BaseLocale
	}
	return b.tags[index].String()
}

// Printer returns a message.Printer bound to this bundle for locale.
func (b *Bundle) Printer(locale string) *message.Printer {
	return message.NewPrinter(language.MustParse(b.Match(locale)), message.Catalog(b.printer))
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all available locale identifiers.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message returns one message value with base-locale fallback.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	if table, ok := b.locales[strings.TrimSpace(locale)]; ok {
		if value, exists := table.messages[key]; exists {
			return value, true
		}
	}
	value, ok := b.locales[BaseLocale].messages[key]
	return value, ok
}

// Label is Message that returns key itself when nothing is defined.
func (b *Bundle) Label(locale, key string) string {
	if value, ok := b.Message(locale, key); ok {
		return value
	}
	return key
}

// Namespaces lists the namespaces defined for an exact locale.
func (b *Bundle) Namespaces(locale string) []string {
	if b == nil {
		return nil
	}
	table, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(table.namespaces))
	for ns := range table.namespaces {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// NamespaceMessages returns a copy of one namespace for an exact locale.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	table, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(table.namespaces[namespace]))
	for key, value := range table.namespaces[namespace] {
		out[key] = value
	}
	return out
}

// NamespaceMessagesWithFallback returns namespace messages and the locale that satisfied the lookup.
func (b *Bundle) NamespaceMessagesWithFallback(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	if messages := b.NamespaceMessages(locale, namespace); len(messages) > 0 {
		return locale, messages
	}
	return BaseLocale, b.NamespaceMessages(BaseLocale, namespace)
}

// parseLocaleFile reads the small YAML subset the catalogs use:
//
//	locale: "en-US"
//	namespace: "core"
//	messages:
//	  "key": "value"
func parseLocaleFile(data []byte) (localeFile, error) {
	out := localeFile{Messages: map[string]string{}}
	inMessages := false

	for n, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var err error
		switch {
		case strings.HasPrefix(line, "locale:"):
			out.Locale, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "locale:")))
		case strings.HasPrefix(line, "namespace:"):
			out.Namespace, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "namespace:")))
		case line == "messages:":
			inMessages = true
		case inMessages:
			var key, value string
			key, value, err = parseEntry(line)
			if err == nil {
				if strings.TrimSpace(key) == "" {
					err = fmt.Errorf("message key cannot be blank")
				}
				out.Messages[key] = value
			}
		default:
			err = fmt.Errorf("unexpected line")
		}
		if err != nil {
			return localeFile{}, fmt.Errorf("line %d %q: %w", n+1, line, err)
		}
	}

	switch {
	case out.Locale == "":
		return localeFile{}, fmt.Errorf("missing locale")
	case out.Namespace == "":
		return localeFile{}, fmt.Errorf("missing namespace")
	case len(out.Messages) == 0:
		return localeFile{}, fmt.Errorf("missing messages")
	}
	return out, nil
}

func parseEntry(line string) (string, string, error) {
	if !strings.HasPrefix(line, `"`) {
		return "", "", fmt.Errorf("expected quoted key")
	}
	end := -1
	for i := 1; i < len(line); i++ {
		if line[i] == '\\' {
			i++
			continue
		}
		if line[i] == '"' {
			end = i
			break
		}
	}
	if end < 0 {
		return "", "", fmt.Errorf("unterminated quoted key")
	}
	key, err := strconv.Unquote(line[:end+1])
	if err != nil {
		return "", "", fmt.Errorf("unquote key: %w", err)
	}
	rest := strings.TrimSpace(line[end+1:])
	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	value, err := strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(rest, ":")))
	if err != nil {
		return "", "", fmt.Errorf("unquote value: %w", err)
	}
	return key, value, nil
}
