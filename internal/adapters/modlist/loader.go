// Package modlist implements the ModListLoader port for plain-text mod lists.
package modlist

import (
	"bufio"
	"net/url"
	"os"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader implements ports.ModListLoader.
//
// A mod list holds one package per line, either as an identifier
// ("Namespace-Name[-Version]") or as a repository URL, optionally wrapped
// in angle brackets. Blank lines and comment lines are skipped. Lists that
// use angle brackets anywhere are read for their bracketed references only.
type Loader struct {
	commentPrefix string
	host          string
}

// NewLoader creates a Loader accepting URLs from the repository configured in settings.
func NewLoader(settings *domain.Settings) (*Loader, error) {
	u, err := url.Parse(settings.BaseURL)
	if err != nil || u.Host == "" {
		return nil, zerr.With(zerr.With(domain.ErrConfigInvalid, "key", "repository.base_url"), "value", settings.BaseURL)
	}

	return &Loader{
		commentPrefix: settings.CommentPrefix,
		host:          u.Hostname(),
	}, nil
}

// Load parses the mod list at path, in file order.
func (l *Loader) Load(path string) ([]domain.PackageRef, error) {
	// #nosec G304 -- path is chosen by the user on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInputRead.Error()), "path", path)
	}
	defer func() {
		_ = f.Close()
	}()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInputRead.Error()), "path", path)
	}

	bracketMode := slices.ContainsFunc(lines, l.hasBracketGroup)

	var refs []domain.PackageRef
	for i, line := range lines {
		lineRefs, err := l.parseLine(line, bracketMode)
		if err != nil {
			parseErr := zerr.With(zerr.Wrap(err, domain.ErrInputParse.Error()), "path", path)
			return nil, zerr.With(parseErr, "line", i+1)
		}
		refs = append(refs, lineRefs...)
	}

	return refs, nil
}

// bracketGroup matches one "<...>" reference.
var bracketGroup = regexp.MustCompile(`<([^<>]+)>`)

// content strips the byte order mark and surrounding space. Empty and comment
// lines yield "".
func (l *Loader) content(line string) string {
	line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	if l.commentPrefix != "" && strings.HasPrefix(line, l.commentPrefix) {
		return ""
	}
	return line
}

func (l *Loader) hasBracketGroup(line string) bool {
	return bracketGroup.MatchString(l.content(line))
}

// parseLine returns the references named by line.
//
// Once any line of the list holds a "<...>" group the list is read in
// bracket mode: only bracketed references count and other text is ignored,
// so hand-written notes may sit next to the links.
func (l *Loader) parseLine(line string, bracketMode bool) ([]domain.PackageRef, error) {
	line = l.content(line)
	if line == "" {
		return nil, nil
	}

	if !bracketMode {
		if strings.IndexByte(line, '<') >= 0 {
			return nil, zerr.With(domain.ErrInvalidPackageRef, "text", line)
		}
		ref, err := l.parseRef(line)
		if err != nil {
			return nil, err
		}
		return []domain.PackageRef{ref}, nil
	}

	var refs []domain.PackageRef
	for _, m := range bracketGroup.FindAllStringSubmatch(line, -1) {
		ref, err := l.parseRef(strings.TrimSpace(m[1]))
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// parseRef reads an identifier or a repository URL.
func (l *Loader) parseRef(text string) (domain.PackageRef, error) {
	if !strings.Contains(text, "://") {
		return domain.ParseIdentifier(text)
	}

	u, err := url.Parse(text)
	if err != nil {
		return domain.PackageRef{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidPackageRef.Error()), "url", text)
	}
	if !l.sameHost(u.Hostname()) {
		return domain.PackageRef{}, zerr.With(domain.ErrForeignURL, "url", text)
	}

	return domain.RefFromPath(u.Path)
}

func (l *Loader) sameHost(host string) bool {
	return strings.EqualFold(strings.TrimPrefix(host, "www."), strings.TrimPrefix(l.host, "www."))
}
