package audit

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

// Severity ranks a finding. Every finding counts as a problem; notices are
// the ones that are expected while content is being worked on.
type Severity string

const (
	SeverityProblem Severity = "problem"
	SeverityNotice  Severity = "notice"
)

// Finding is one thing wrong with a prototype.
type Finding struct {
	Kind     game.Kind    `json:"kind" yaml:"kind"`
	Vnum     storage.Vnum `json:"vnum" yaml:"vnum"`
	Severity Severity     `json:"severity" yaml:"severity"`
	Message  string       `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%5d] %s", f.Vnum, f.Message)
}

// Report collects the findings of a walk over a whole table.
type Report struct {
	Kind     game.Kind `json:"kind" yaml:"kind"`
	Audited  int       `json:"audited" yaml:"audited"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Flagged returns the vnums with at least one finding, ascending.
func (r *Report) Flagged() []storage.Vnum {
	var out []storage.Vnum
	for _, f := range r.Findings {
		if !slices.Contains(out, f.Vnum) {
			out = append(out, f.Vnum)
		}
	}
	slices.Sort(out)
	return out
}

// Auditor checks prototypes against the rest of the dictionary. It never
// changes anything.
type Auditor struct {
	dict *game.Dictionary
}

func New(dict *game.Dictionary) *Auditor {
	return &Auditor{dict: dict}
}

// Audit runs the checklist for p's kind.
func (a *Auditor) Audit(p game.Prototype) (bool, []Finding) {
	c := &checker{dict: a.dict, kind: p.Kind(), vnum: p.Vnum()}

	switch p := p.(type) {
	case *game.Book:
		c.book(p)
	case *game.Event:
		c.event(p)
	case *game.Generic:
		c.generic(p)
	case *game.Adventure:
		c.adventure(p)
	case *game.Building:
		c.building(p)
	case *game.Crop:
		c.crop(p)
	case *game.GlobalRule:
		c.global(p)
	case *game.Sector:
		c.sector(p)
	default:
		c.developable(p)
	}

	return len(c.findings) > 0, c.findings
}

// AuditAll audits every prototype of kind.
func (a *Auditor) AuditAll(kind game.Kind) *Report {
	r := &Report{Kind: kind}
	for _, p := range a.dict.All(kind) {
		r.Audited++
		_, found := a.Audit(p)
		r.Findings = append(r.Findings, found...)
	}
	return r
}

type checker struct {
	dict     *game.Dictionary
	kind     game.Kind
	vnum     storage.Vnum
	findings []Finding
}

func (c *checker) problem(format string, args ...any) {
	c.add(SeverityProblem, format, args...)
}

func (c *checker) notice(format string, args ...any) {
	c.add(SeverityNotice, format, args...)
}

func (c *checker) add(s Severity, format string, args ...any) {
	c.findings = append(c.findings, Finding{
		Kind:     c.kind,
		Vnum:     c.vnum,
		Severity: s,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *checker) developable(p game.Prototype) {
	if d, ok := p.(game.Developable); ok && d.InDevelopment() {
		c.notice("IN-DEVELOPMENT")
	}
}

// exists reports whether a reference into kind resolves. References into
// tables this dictionary does not hold are taken on trust.
func (c *checker) exists(kind game.Kind, vnum storage.Vnum) bool {
	if _, ok := c.dict.Table(kind); !ok {
		return true
	}
	_, ok := c.dict.Lookup(kind, vnum)
	return ok
}
