package check

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
)

// Translations is the decoded contents of a locale file, nested objects are
// map[string]any.
type Translations map[string]any

// Lookup returns the value of the dotted key, e.g. "general.search.title".
func (t Translations) Lookup(key string) (any, bool) {
	var current any = map[string]any(t)

	for part := range strings.SplitSeq(key, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = object[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Dependencies is everything a check may need from outside the file it checks.
//
// Paths are slash separated and relative to the theme root, e.g.
// "snippets/card.liquid". Implementations must be safe for concurrent use.
type Dependencies interface {
	// DefaultTranslations returns the translations of the default locale.
	DefaultTranslations(ctx context.Context) (Translations, error)

	// DefaultLocale returns the name of the default locale e.g. "en".
	DefaultLocale(ctx context.Context) (string, error)

	// FileExists reports whether the file at path exists.
	FileExists(ctx context.Context, path string) (bool, error)

	// FileSize returns the size in bytes of the file at path.
	FileSize(ctx context.Context, path string) (int64, error)
}

// Docset provides the documentation data of the template language, checks that
// need it must handle it being absent.
type Docset interface {
	// Filters returns the names of every known filter.
	Filters(ctx context.Context) ([]string, error)

	// Tags returns the names of every known tag.
	Tags(ctx context.Context) ([]string, error)

	// Objects returns the names of every known global object.
	Objects(ctx context.Context) ([]string, error)
}

// StaticDocset is a [Docset] over fixed lists.
type StaticDocset struct {
	FilterNames []string
	TagNames    []string
	ObjectNames []string
}

// Filters implements [Docset].
func (d StaticDocset) Filters(context.Context) ([]string, error) {
	return d.FilterNames, nil
}

// Tags implements [Docset].
func (d StaticDocset) Tags(context.Context) ([]string, error) {
	return d.TagNames, nil
}

// Objects implements [Docset].
func (d StaticDocset) Objects(context.Context) ([]string, error) {
	return d.ObjectNames, nil
}

// defaultLocaleSuffix marks the default locale file in the locales directory.
const defaultLocaleSuffix = ".default.json"

// DirDependencies is a [Dependencies] backed by the files of a theme.
//
// The default locale is the single locales/<name>.default.json file, it is read
// once and shared by every check.
type DirDependencies struct {
	fsys   fs.FS
	locale func() (defaultLocale, error)
}

// defaultLocale is the decoded default locale file of a theme.
type defaultLocale struct {
	translations Translations
	name         string
}

// NewDirDependencies returns [Dependencies] for the theme rooted at dir.
func NewDirDependencies(dir string) *DirDependencies {
	return NewFSDependencies(os.DirFS(dir))
}

// NewFSDependencies returns [Dependencies] for the theme in fsys.
func NewFSDependencies(fsys fs.FS) *DirDependencies {
	d := &DirDependencies{fsys: fsys}
	d.locale = sync.OnceValues(d.loadDefaultLocale)

	return d
}

func (d *DirDependencies) loadDefaultLocale() (defaultLocale, error) {
	matches, err := fs.Glob(d.fsys, "locales/*"+defaultLocaleSuffix)
	if err != nil {
		return defaultLocale{}, fmt.Errorf("could not search for the default locale: %w", err)
	}

	switch len(matches) {
	case 0:
		return defaultLocale{}, fmt.Errorf("no locales/*%s file in theme: %w", defaultLocaleSuffix, fs.ErrNotExist)
	case 1:
	default:
		return defaultLocale{}, fmt.Errorf("more than one default locale: %s", strings.Join(matches, ", "))
	}

	contents, err := fs.ReadFile(d.fsys, matches[0])
	if err != nil {
		return defaultLocale{}, fmt.Errorf("could not read default locale: %w", err)
	}

	translations := Translations{}
	if err := json.Unmarshal(contents, &translations); err != nil {
		return defaultLocale{}, fmt.Errorf("could not decode %s: %w", matches[0], err)
	}

	return defaultLocale{
		name:         strings.TrimSuffix(path.Base(matches[0]), defaultLocaleSuffix),
		translations: translations,
	}, nil
}

// DefaultTranslations implements [Dependencies].
func (d *DirDependencies) DefaultTranslations(ctx context.Context) (Translations, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locale, err := d.locale()

	return locale.translations, err
}

// DefaultLocale implements [Dependencies].
func (d *DirDependencies) DefaultLocale(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	locale, err := d.locale()

	return locale.name, err
}

// FileExists implements [Dependencies].
func (d *DirDependencies) FileExists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := fs.Stat(d.fsys, name)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// FileSize implements [Dependencies].
func (d *DirDependencies) FileSize(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	info, err := fs.Stat(d.fsys, name)
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}
