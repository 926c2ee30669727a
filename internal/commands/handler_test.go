package commands

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-olc/internal/metrics"
	"github.com/pixil98/go-testutil"
)

type mockActor struct {
	sent    []string
	answers []bool
	asked   []string
	quit    bool
}

func (a *mockActor) Name() string { return "Tester" }

func (a *mockActor) Send(msg string) { a.sent = append(a.sent, msg) }

func (a *mockActor) Confirm(_ context.Context, prompt string) (bool, error) {
	a.asked = append(a.asked, prompt)
	if len(a.answers) == 0 {
		return false, fmt.Errorf("no answer")
	}
	yes := a.answers[0]
	a.answers = a.answers[1:]
	return yes, nil
}

func (a *mockActor) Quit() { a.quit = true }

// recorder remembers what each run of its commands saw.
type recorder struct {
	ran []string
}

func (r *recorder) factory() HandlerFactory {
	return FactoryFunc(func(_ context.Context, cc *Context) error {
		r.ran = append(r.ran, fmt.Sprintf("%s %v %s", cc.Command.Name, cc.Inputs, cc.Config["target"]))
		return nil
	})
}

func newTestHandler(t *testing.T, m *metrics.Metrics) (*Handler, *recorder) {
	t.Helper()

	rec := &recorder{}
	h := NewHandler(WithMetrics(m))
	if err := h.RegisterFactory("record", rec.factory()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := h.Add(
		&Command{Name: "save", Handler: "record", Category: "editing"},
		&Command{Name: "show", Handler: "record", Category: "editing"},
		&Command{
			Name:     "delete",
			Handler:  "record",
			Category: "content",
			Config:   map[string]any{"target": "{{ .Inputs.kind }}/{{ .Inputs.vnum }}"},
			Confirm:  "Delete {{ .Inputs.kind }} {{ .Inputs.vnum }}?",
			Inputs: []InputSpec{
				{Name: "kind", Type: InputTypeKind, Required: true},
				{Name: "vnum", Type: InputTypeVnum, Required: true},
			},
		},
		&Command{Name: "help", Handler: "help", Inputs: []InputSpec{{Name: "command", Type: InputTypeString}}},
		&Command{Name: "quit", Handler: "quit"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h, rec
}

func TestHandler_Exec(t *testing.T) {
	tests := map[string]struct {
		line    string
		answers []bool
		expRan  []string
		expSent []string
		expErr  string
	}{
		"blank line": {
			line: "   ",
		},
		"exact": {
			line:   "show",
			expRan: []string{"show map[] "},
		},
		"abbreviation takes first added": {
			line:   "s",
			expRan: []string{"save map[] "},
		},
		"longer abbreviation": {
			line:   "sh",
			expRan: []string{"show map[] "},
		},
		"unknown": {
			line:   "dance",
			expErr: "Unknown command: dance",
		},
		"bad input": {
			line:   "delete sector x",
			expErr: `"x" is not a valid vnum.`,
		},
		"confirmed": {
			line:    "del sector 3",
			answers: []bool{true},
			expRan:  []string{"delete map[kind:sector vnum:3] sector/3"},
		},
		"declined": {
			line:    "del sector 3",
			answers: []bool{false},
			expSent: []string{"Cancelled."},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, rec := newTestHandler(t, nil)
			actor := &mockActor{answers: tt.answers}

			err := h.Exec(context.Background(), actor, tt.line)

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				testutil.AssertEqual(t, "ran", len(rec.ran), 0)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "ran", fmt.Sprint(rec.ran), fmt.Sprint(tt.expRan))
			testutil.AssertEqual(t, "sent", fmt.Sprint(actor.sent), fmt.Sprint(tt.expSent))
		})
	}
}

func TestHandler_ConfirmPrompt(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	actor := &mockActor{answers: []bool{false}}

	if err := h.Exec(context.Background(), actor, "delete building 5100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "asked", fmt.Sprint(actor.asked), fmt.Sprint([]string{"Delete building 5100?"}))
}

func TestHandler_Add(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	err := h.Add(&Command{Name: "save", Handler: "record"})
	testutil.AssertErrorContains(t, err, `command "save" already defined`)

	err = h.Add(&Command{Name: "fly", Handler: "wings"})
	testutil.AssertErrorContains(t, err, `unknown handler "wings"`)

	err = h.RegisterFactory("record", FactoryFunc(nil))
	testutil.AssertErrorContains(t, err, `handler factory "record" already registered`)
}

func TestHandler_Metrics(t *testing.T) {
	m := metrics.New()
	h, _ := newTestHandler(t, m)
	actor := &mockActor{}

	_ = h.Exec(context.Background(), actor, "save")
	_ = h.Exec(context.Background(), actor, "sa")
	_ = h.Exec(context.Background(), actor, "dance")

	got, err := m.Gather()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "saves", got["olc_commands_total{command=save}"], 2.0)
	testutil.AssertEqual(t, "user errors", got["olc_user_errors_total"], 1.0)
}

func TestHandler_Help(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	actor := &mockActor{}
	if err := h.Exec(context.Background(), actor, "help"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exp := strings.Join([]string{
		"Available commands:",
		"  Content: delete",
		"  Editing: save, show",
		"  Other: help, quit",
	}, "\n")
	testutil.AssertEqual(t, "list", fmt.Sprint(actor.sent), fmt.Sprint([]string{exp}))

	actor = &mockActor{}
	if err := h.Exec(context.Background(), actor, "help del"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "one", fmt.Sprint(actor.sent), fmt.Sprint([]string{"delete: \nUsage: delete <kind> <vnum>"}))

	err := h.Exec(context.Background(), &mockActor{}, "help dance")
	testutil.AssertErrorContains(t, err, `Command "dance" is unknown.`)
}

func TestHandler_Quit(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	actor := &mockActor{}

	if err := h.Exec(context.Background(), actor, "quit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "quit", actor.quit, true)
	testutil.AssertEqual(t, "sent", fmt.Sprint(actor.sent), fmt.Sprint([]string{"Goodbye!"}))
}

func TestHandler_Exclusive(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	err := h.Exclusive(func() error { return fmt.Errorf("tick failed") })
	testutil.AssertErrorContains(t, err, "tick failed")
}
