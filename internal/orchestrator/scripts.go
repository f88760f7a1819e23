package orchestrator

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/assmerge/internal/ass"
	"github.com/dusk-indust/assmerge/internal/record"
)

// Scripts holds the three versions taking part in a merge.
type Scripts struct {
	LocalPath, AncestorPath, RemotePath string

	Local, Ancestor, Remote *ass.Document
}

// LoadScripts parses the three files concurrently, tagging their records
// with the matching provenance.
func LoadScripts(local, ancestor, remote string) (*Scripts, error) {
	s := &Scripts{LocalPath: local, AncestorPath: ancestor, RemotePath: remote}

	var g errgroup.Group
	load := func(dst **ass.Document, path string, src record.Provenance) {
		g.Go(func() error {
			doc, err := ass.ParseFile(path, src)
			if err != nil {
				return fmt.Errorf("%s version: %w", src, err)
			}
			*dst = doc
			return nil
		})
	}
	load(&s.Local, local, record.Local)
	load(&s.Ancestor, ancestor, record.Ancestor)
	load(&s.Remote, remote, record.Remote)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// Warnings maps each input path to the lines skipped while parsing it. Paths
// without skipped lines are left out.
func (s *Scripts) Warnings() map[string]error {
	out := make(map[string]error, 3)
	for path, doc := range map[string]*ass.Document{
		s.LocalPath:    s.Local,
		s.AncestorPath: s.Ancestor,
		s.RemotePath:   s.Remote,
	} {
		if err := doc.Warnings(); err != nil {
			out[path] = err
		}
	}
	return out
}

// Paths lists the input paths in local, ancestor, remote order, each once.
func (s *Scripts) Paths() []string {
	return lo.Uniq([]string{s.LocalPath, s.AncestorPath, s.RemotePath})
}
