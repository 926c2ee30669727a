package olc

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-olc/internal/commands"
	"github.com/pixil98/go-olc/internal/display"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

func sessionOf(cc *commands.Context) (*Session, error) {
	s, ok := cc.Actor.(*Session)
	if !ok {
		return nil, fmt.Errorf("actor %q is not an editing session", cc.Actor.Name())
	}
	return s, nil
}

// sessionFunc adapts a command body that needs the caller's session.
func sessionFunc(fn func(ctx context.Context, cc *commands.Context, s *Session) error) commands.FactoryFunc {
	return func(ctx context.Context, cc *commands.Context) error {
		s, err := sessionOf(cc)
		if err != nil {
			return err
		}
		return fn(ctx, cc, s)
	}
}

func (m *Manager) registerFactories() error {
	factories := map[string]commands.HandlerFactory{
		"edit":   sessionFunc(m.doEdit),
		"copy":   sessionFunc(m.doCopy),
		"save":   sessionFunc(m.doSave),
		"abort":  sessionFunc(m.doAbort),
		"show":   sessionFunc(m.doShow),
		"delete": sessionFunc(m.doDelete),
		"search": commands.FactoryFunc(m.doSearch),
		"audit":  sessionFunc(m.doAudit),
		"list":   commands.FactoryFunc(m.doList),
		"who":    commands.FactoryFunc(m.doWho),
		"module": &ModuleHandlerFactory{editor: m.editor},
	}
	for name, f := range factories {
		if err := m.cmds.RegisterFactory(name, f); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) doEdit(ctx context.Context, cc *commands.Context, s *Session) error {
	buf, err := m.editor.Begin(ctx, s, cc.Kind("kind"), cc.Vnum("vnum"))
	if err != nil {
		return err
	}
	verb := "now editing"
	if s.IsNew() {
		verb = "creating"
	}
	s.Send(fmt.Sprintf("You are %s %s %d.", verb, buf.Kind(), buf.Vnum()))
	s.Send(strings.Join(m.editor.Show(buf), "\n"))
	return nil
}

func (m *Manager) doCopy(ctx context.Context, cc *commands.Context, s *Session) error {
	buf, err := m.editor.Copy(ctx, s, cc.Kind("kind"), cc.Vnum("from"), cc.Vnum("to"))
	if err != nil {
		return err
	}
	s.Send(fmt.Sprintf("Copied %s %d to %d. Save it to keep the copy.", buf.Kind(), cc.Vnum("from"), buf.Vnum()))
	return nil
}

func (m *Manager) doSave(ctx context.Context, _ *commands.Context, s *Session) error {
	live, err := m.editor.Commit(ctx, s)
	if err != nil {
		return err
	}
	s.Send(fmt.Sprintf("Saved %s %d.", live.Kind(), live.Vnum()))
	return nil
}

func (m *Manager) doAbort(ctx context.Context, _ *commands.Context, s *Session) error {
	if err := m.editor.Abort(ctx, s); err != nil {
		return err
	}
	s.Send("Edit aborted. Your changes were discarded.")
	return nil
}

// doShow shows the stored prototype named by the inputs, or the caller's
// buffer when none is named.
func (m *Manager) doShow(_ context.Context, cc *commands.Context, s *Session) error {
	p, err := m.target(cc, s)
	if err != nil {
		return err
	}
	s.Send(strings.Join(m.editor.Show(p), "\n"))
	return nil
}

func (m *Manager) target(cc *commands.Context, s *Session) (game.Prototype, error) {
	if !cc.Has("kind") {
		if p := s.Prototype(); p != nil {
			return p, nil
		}
		return nil, commands.NewUserError("You aren't editing anything.")
	}
	if !cc.Has("vnum") {
		return nil, commands.NewUserErrorf("Which %s?", cc.Kind("kind"))
	}
	p, ok := m.dict.Lookup(cc.Kind("kind"), cc.Vnum("vnum"))
	if !ok {
		return nil, commands.NewUserErrorf("There is no %s with that vnum.", cc.Kind("kind"))
	}
	return p, nil
}

func (m *Manager) doDelete(ctx context.Context, cc *commands.Context, s *Session) error {
	res, err := m.deleter.Delete(ctx, cc.Kind("kind"), cc.Vnum("vnum"), s)
	if err != nil {
		return err
	}

	s.Send(fmt.Sprintf("%s %d (%s) deleted.", display.Capitalize(string(res.Kind)), res.Vnum, res.Name))
	if n := len(res.Changed); n > 0 {
		s.Send(fmt.Sprintf("Removed references from %d stored prototype%s.", n, display.Plural(n)))
	}
	if res.World > 0 {
		s.Send(fmt.Sprintf("Repaired %d thing%s in the world.", res.World, display.Plural(res.World)))
	}
	if res.Notified > 0 {
		s.Send(fmt.Sprintf("Warned %d editor%s.", res.Notified, display.Plural(res.Notified)))
	}
	if !res.Flushed {
		s.Send("Some files could not be written yet. They will be retried.")
	}
	return nil
}

func (m *Manager) doSearch(_ context.Context, cc *commands.Context) error {
	kind, vnum := cc.Kind("kind"), cc.Vnum("vnum")
	if _, ok := m.dict.Lookup(kind, vnum); !ok {
		return commands.NewUserErrorf("There is no %s with that vnum.", kind)
	}

	refs := m.deleter.Search(kind, vnum)
	if len(refs) == 0 {
		cc.Actor.Send(fmt.Sprintf("Nothing refers to %s %d.", kind, vnum))
		return nil
	}
	lines := []string{fmt.Sprintf("%d reference%s to %s %d:", len(refs), display.Plural(len(refs)), kind, vnum)}
	for _, r := range refs {
		lines = append(lines, fmt.Sprintf("  %-9s [%5d] %s (%s)", r.Kind, r.Vnum, r.Name, r.Field))
	}
	cc.Actor.Send(strings.Join(lines, "\n"))
	return nil
}

// doAudit checks one prototype, or a whole table when only a kind is given.
func (m *Manager) doAudit(_ context.Context, cc *commands.Context, s *Session) error {
	if cc.Has("kind") && !cc.Has("vnum") {
		report := m.auditor.AuditAll(cc.Kind("kind"))
		lines := []string{fmt.Sprintf("Audited %d %s%s, %d flagged.",
			report.Audited, report.Kind, display.Plural(report.Audited), len(report.Flagged()))}
		for _, f := range report.Findings {
			lines = append(lines, f.String())
		}
		s.Send(strings.Join(lines, "\n"))
		return nil
	}

	p, err := m.target(cc, s)
	if err != nil {
		return err
	}
	problems, findings := m.auditor.Audit(p)
	if !problems {
		s.Send("No problems found.")
		return nil
	}
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Severity, f.Message))
	}
	s.Send(strings.Join(lines, "\n"))
	return nil
}

// doList lists a table, optionally only entries whose label contains a word.
func (m *Manager) doList(_ context.Context, cc *commands.Context) error {
	kind := cc.Kind("kind")
	filter := storage.Fold(cc.String("filter"))

	var entries []string
	for _, p := range m.dict.All(kind) {
		if filter != "" && !strings.Contains(storage.Fold(p.Label()), filter) {
			continue
		}
		entries = append(entries, fmt.Sprintf("[%5d] %s", p.Vnum(), p.Label()))
	}
	if len(entries) == 0 {
		cc.Actor.Send(fmt.Sprintf("No %ss found.", kind))
		return nil
	}
	cc.Actor.Send(strings.Join(display.Columns(entries), "\n"))
	return nil
}

func (m *Manager) doWho(_ context.Context, cc *commands.Context) error {
	lines := []string{"Editors online:"}
	for _, s := range m.dir.Sessions() {
		doing := "idle"
		if kind, vnum, ok := s.Editing(); ok {
			doing = fmt.Sprintf("editing %s %d", kind, vnum)
		}
		lines = append(lines, fmt.Sprintf("  %-16s %s", s.Name(), doing))
	}
	cc.Actor.Send(strings.Join(lines, "\n"))
	return nil
}

// ModuleHandlerFactory creates handlers that run one field module on the
// caller's buffer. The module name comes from the "module" config key.
type ModuleHandlerFactory struct {
	editor *Editor
}

func (f *ModuleHandlerFactory) ValidateConfig(config map[string]any) error {
	if name, _ := config["module"].(string); name == "" {
		return fmt.Errorf("module not set")
	}
	return nil
}

func (f *ModuleHandlerFactory) Create(config map[string]any) (commands.CommandFunc, error) {
	name, _ := config["module"].(string)

	return func(ctx context.Context, cc *commands.Context) error {
		s, err := sessionOf(cc)
		if err != nil {
			return err
		}
		msg, err := f.editor.Apply(s, name, cc.String("args"))
		if err != nil {
			return err
		}
		s.Send(msg)
		return nil
	}, nil
}
