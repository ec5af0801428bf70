package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/cwbudde/algo-ecg/dsp/filter/design"
)

const replHelp = `enter "f0 [q [fs]]" to design a notch, "verify" or "response" to toggle
the extra tables, "quit" to leave`

// session holds the interactive toggles between lines.
type session struct {
	defaults design.Params
	verify   bool
	response bool
}

func repl(defaults design.Params, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "notch> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	s := &session{defaults: defaults}
	fmt.Fprintln(out, replHelp)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit := s.eval(out, line); quit {
			return nil
		}
	}
}

// eval handles one input line and reports whether the session should end.
func (s *session) eval(out io.Writer, line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(out, replHelp)
		return false
	case "verify":
		s.verify = !s.verify
		fmt.Fprintf(out, "verify %s\n", onOff(s.verify))
		return false
	case "response":
		s.response = !s.response
		fmt.Fprintf(out, "response %s\n", onOff(s.response))
		return false
	}

	p, err := parseQuery(line, s.defaults)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return false
	}
	d, err := design.NewNotch(p)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return false
	}
	if err := report(out, []design.Design{d}, s.verify, s.response); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	}
	return false
}

// parseQuery reads "f0 [q [fs]]". Missing fields come from defaults.
func parseQuery(line string, defaults design.Params) (design.Params, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields) > 3 {
		return design.Params{}, fmt.Errorf("want \"f0 [q [fs]]\", got %q", line)
	}
	p := defaults
	dst := []*float64{&p.Frequency, &p.Q, &p.SampleRate}
	names := []string{"frequency", "q", "sample rate"}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return design.Params{}, fmt.Errorf("%s %q: not a number", names[i], f)
		}
		*dst[i] = v
	}
	return p, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
