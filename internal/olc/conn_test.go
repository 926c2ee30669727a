package olc

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/pixil98/go-olc/internal"
	"github.com/pixil98/go-testutil"
)

type fakeConn struct {
	io.Reader
	io.Writer
}

func TestManager_RunSession(t *testing.T) {
	tests := map[string]struct {
		input     string
		expErr    string
		expOutput []string
	}{
		"edit then quit": {
			input: "ann\nedit sector 1\nquit\n",
			expOutput: []string{
				"Who is editing? ",
				"Hello, Ann.",
				"You are creating sector 1.",
				"olc sector 1> ",
				"Goodbye!",
			},
		},
		"connection drops": {
			input:     "bob\n",
			expOutput: []string{"Hello, Bob.", "olc> "},
		},
		"user errors keep the session": {
			input:     "ann\nsave\nquit\n",
			expOutput: []string{"You aren't editing anything.", "Goodbye!"},
		},
		"bad names": {
			input:  "1\nx\nno spaces\n",
			expErr: "login: too many tries",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			m := newManager(t, f)
			out := &bytes.Buffer{}

			err := m.RunSession(context.Background(), fakeConn{Reader: strings.NewReader(tc.input), Writer: out})
			if tc.expErr != "" {
				testutil.AssertErrorContains(t, err, tc.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, exp := range tc.expOutput {
				if !strings.Contains(out.String(), exp) {
					t.Errorf("output missing %q:\n%s", exp, out.String())
				}
			}
			testutil.AssertEqual(t, "sessions left", f.dir.OpenCount(), 0)
		})
	}
}

func TestManager_RunSessionKnownName(t *testing.T) {
	tests := map[string]struct {
		name      string
		input     string
		expOutput string
	}{
		"ssh user is used": {
			name:      "wolfgang",
			input:     "quit\n",
			expOutput: "Hello, Wolfgang.",
		},
		"invalid user still prompts": {
			name:      "root42",
			input:     "ann\nquit\n",
			expOutput: "Who is editing? ",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			m := newManager(t, f)
			out := &bytes.Buffer{}
			ctx := internal.WithEditorName(context.Background(), tc.name)

			err := m.RunSession(ctx, fakeConn{Reader: strings.NewReader(tc.input), Writer: out})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "output", strings.Contains(out.String(), tc.expOutput), true)
		})
	}
}

func TestLogin(t *testing.T) {
	out := &bytes.Buffer{}
	name, err := login(&scriptReader{lines: []string{"a", "wOLFgang"}}, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "name", name, "Wolfgang")
	testutil.AssertEqual(t, "retry", strings.Contains(out.String(), "Names are 2 to 20 letters long."), true)
}

func TestFormatName(t *testing.T) {
	tests := map[string]struct {
		in  string
		exp string
	}{
		"ascii":           {in: "wOLFgang", exp: "Wolfgang"},
		"multibyte first": {in: "éLODIE", exp: "Élodie"},
		"multibyte later": {in: "zOË", exp: "Zoë"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "name", formatName(tc.in), tc.exp)
		})
	}
}

func TestValidName(t *testing.T) {
	tests := map[string]struct {
		in  string
		exp bool
	}{
		"two accented letters": {in: "éé", exp: true},
		"one accented letter":  {in: "é", exp: false},
		"twenty runes":         {in: strings.Repeat("ö", 20), exp: true},
		"digits":               {in: "ann1", exp: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ok, _ := validName(tc.in)
			testutil.AssertEqual(t, "valid", ok, tc.exp)
		})
	}
}
