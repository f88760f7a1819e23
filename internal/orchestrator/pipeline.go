package orchestrator

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/dusk-indust/assmerge/internal/ass"
	"github.com/dusk-indust/assmerge/internal/conflict"
	"github.com/dusk-indust/assmerge/internal/diff3"
	"github.com/dusk-indust/assmerge/internal/extradata"
	"github.com/dusk-indust/assmerge/internal/keyval"
	"github.com/dusk-indust/assmerge/internal/record"
)

var _ Orchestrator = (*Pipeline)(nil)

// Alignment keys. Events match on identical text or identical timing, so a
// retimed line and a reworded line are both still recognised. Styles match
// on name.
var (
	eventKeys = []diff3.Key{
		func(r *record.Record) string { return r.Get("Text") },
		func(r *record.Record) string { return r.Get("Start") + "\x00" + r.Get("End") },
	}
	styleKeys = []diff3.Key{
		func(r *record.Record) string { return r.Get("Name") },
	}
)

// Pipeline merges scripts by fanning the independent sections out in
// parallel, then running the passes that need all of them.
type Pipeline struct {
	cfg      Config
	log      *zap.Logger
	progress *progressFeed
	fanout   *FanOut
}

// NewPipeline creates a Pipeline. A nil logger disables logging.
func NewPipeline(cfg Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	progress := newProgressFeed()
	return &Pipeline{
		cfg:      cfg,
		log:      log,
		progress: progress,
		fanout:   NewFanOut(progress.publish),
	}
}

// Progress returns a channel that emits progress events. It is closed by
// Close.
func (p *Pipeline) Progress() <-chan ProgressEvent {
	return p.progress.events()
}

// Close ends the progress stream. It is safe to call more than once.
func (p *Pipeline) Close() {
	if n := p.progress.close(); n > 0 {
		p.log.Debug("progress events dropped", zap.Int("count", n))
	}
}

// Merge combines local and remote edits of ancestor. The input documents are
// not modified.
func (p *Pipeline) Merge(ctx context.Context, local, ancestor, remote *ass.Document) (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid merge config: %w", err)
	}
	for _, name := range unmergedSections(local, ancestor, remote) {
		p.log.Warn("section is not merged and will be dropped", zap.String("section", name))
	}

	var (
		scriptInfo, garbage []*record.Record
		styles              diff3.Result
		events              diff3.Result
		table               []*record.Record
	)

	tasks := []SectionTask{
		{Section: ass.ScriptInfo, Run: func(context.Context) (string, error) {
			scriptInfo = p.mergeKeyValue(ass.ScriptInfo, local, ancestor, remote)
			return countMessage(len(scriptInfo)), nil
		}},
		{Section: ass.ProjectGarbage, Run: func(context.Context) (string, error) {
			garbage = p.mergeKeyValue(ass.ProjectGarbage, local, ancestor, remote)
			return countMessage(len(garbage)), nil
		}},
		{Section: ass.Styles, Run: func(context.Context) (string, error) {
			styles = diff3.Merge(
				local.Section(ass.Styles), ancestor.Section(ass.Styles), remote.Section(ass.Styles),
				conflict.KeyedDuplicate("Name"), styleKeys...)
			return resultMessage(styles), nil
		}},
		{Section: ass.Events, Run: func(context.Context) (string, error) {
			table, events = p.mergeEvents(local, ancestor, remote)
			return resultMessage(events), nil
		}},
	}
	if err := p.fanout.Run(ctx, tasks); err != nil {
		return nil, err
	}

	mergedStyles := styles.Records
	styleConflict := styles.Conflict
	if n := disambiguateStyles(mergedStyles); n > 0 {
		p.log.Warn("renamed duplicate styles", zap.Int("count", n))
		styleConflict = true
	}

	mergedEvents := events.Records
	if styleConflict {
		mergedEvents = append([]*record.Record{styleConflictEvent()}, mergedEvents...)
	}

	kept := extradata.Prune(table, mergedEvents)
	if pruned := len(table) - len(kept); pruned > 0 {
		p.log.Debug("pruned unreferenced extradata", zap.Int("count", pruned))
	}

	doc := ass.NewDocument()
	doc.Sections[ass.ScriptInfo] = scriptInfo
	doc.Sections[ass.ProjectGarbage] = garbage
	doc.Sections[ass.Styles] = mergedStyles
	doc.Sections[ass.Events] = mergedEvents
	doc.Sections[ass.Extradata] = kept

	res := &Result{
		Document:        doc,
		EventConflict:   events.Conflict,
		StyleConflict:   styleConflict,
		PrunedExtradata: len(table) - len(kept),
	}
	for _, sec := range ass.Layout {
		res.Sections = append(res.Sections, SectionResult{
			Name:     sec.Name,
			Records:  len(doc.Section(sec.Name)),
			Conflict: (sec.Name == ass.Events && res.EventConflict) || (sec.Name == ass.Styles && res.StyleConflict),
		})
	}

	p.log.Debug("merge finished",
		zap.Bool("event_conflict", res.EventConflict),
		zap.Bool("style_conflict", res.StyleConflict))
	return res, nil
}

func (p *Pipeline) mergeKeyValue(section string, local, ancestor, remote *ass.Document) []*record.Record {
	return keyval.Merge(local.Section(section), ancestor.Section(section), remote.Section(section), p.cfg.MetadataPrecedence)
}

// mergeEvents reconciles extradata on copies of the three versions, then
// merges their events. It returns the reconciled table and the merged events.
func (p *Pipeline) mergeEvents(local, ancestor, remote *ass.Document) ([]*record.Record, diff3.Result) {
	versions := lo.Map([]*ass.Document{ancestor, local, remote}, func(d *ass.Document, _ int) extradata.Version {
		return extradata.Version{
			Entries: cloneAll(d.Section(ass.Extradata)),
			Events:  cloneAll(d.Section(ass.Events)),
		}
	})
	table := extradata.Reconcile(versions[0], versions[1], versions[2])

	markers := conflict.NewMarkers(p.cfg.MarkerStyle, p.cfg.MarkerWidth, p.cfg.IncludeAncestor)
	res := diff3.Merge(versions[1].Events, versions[0].Events, versions[2].Events,
		conflict.Sequential(markers, p.cfg.IncludeAncestor), eventKeys...)
	return table, res
}

func cloneAll(records []*record.Record) []*record.Record {
	return lo.Map(records, func(r *record.Record, _ int) *record.Record { return r.Clone() })
}

func unmergedSections(docs ...*ass.Document) []string {
	var names []string
	for _, d := range docs {
		names = append(names, d.Unknown...)
	}
	return lo.Uniq(names)
}

func countMessage(n int) string {
	return fmt.Sprintf("%d lines", n)
}

func resultMessage(r diff3.Result) string {
	if r.Conflict {
		return fmt.Sprintf("%d lines, conflicts", len(r.Records))
	}
	return countMessage(len(r.Records))
}
