// Package snake walks a cobra command tree with interactive prompts and
// builds the argument list for the command the user settles on.
package snake

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Wizard prompts on In and draws on Out.
type Wizard struct {
	In  io.ReadCloser
	Out io.WriteCloser
	// Skip names commands that are never offered.
	Skip map[string]bool
}

// New prompts on the streams of cmd.
func New(cmd *cobra.Command) *Wizard {
	return &Wizard{
		In:   io.NopCloser(cmd.InOrStdin()),
		Out:  nopWriteCloser{cmd.OutOrStdout()},
		Skip: map[string]bool{cmd.Name(): true},
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Args asks for a command under root, its positional arguments and its
// flags, and returns them ready for root.SetArgs.
func (w *Wizard) Args(root *cobra.Command) ([]string, error) {
	cmd, err := w.pickCommand(root)
	if err != nil {
		return nil, err
	}
	args := CommandPath(root, cmd)
	for _, p := range Placeholders(cmd.Use) {
		v, err := w.prompt(p.Name, "", p.Required)
		if err != nil {
			return nil, err
		}
		if v != "" {
			args = append(args, v)
		}
	}
	flags, err := w.pickFlags(cmd)
	if err != nil {
		return nil, err
	}
	return append(args, flags...), nil
}

func (w *Wizard) pickCommand(cmd *cobra.Command) (*cobra.Command, error) {
	for {
		subs := Commands(cmd, w.Skip)
		if len(subs) == 0 {
			return cmd, nil
		}
		templates := &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ .Name | bold }} {{ .Short | green }}",
			Inactive: "   {{ .Name }} {{ .Short | cyan }}",
			Selected: "{{ .CommandPath | bold }}",
			Details: `
--------- Example ----------
{{ .Example }}`,
		}
		prompt := promptui.Select{
			HideHelp:  true,
			Label:     cmd.Name(),
			Items:     subs,
			Templates: templates,
			Size:      10,
			Searcher: func(input string, index int) bool {
				return matches(subs[index].Name()+subs[index].Short, input)
			},
			Stdin:  w.In,
			Stdout: w.Out,
		}
		i, _, err := prompt.Run()
		if err != nil {
			return nil, err
		}
		cmd = subs[i]
	}
}

// done ends flag selection.
var done = &pflag.Flag{Name: "run it", Usage: "no more flags", Value: &doneValue{}}

type doneValue struct{}

func (*doneValue) String() string   { return "" }
func (*doneValue) Set(string) error { return nil }
func (*doneValue) Type() string     { return "done" }

func (w *Wizard) pickFlags(cmd *cobra.Command) ([]string, error) {
	fs := append([]*pflag.Flag{done}, Flags(cmd)...)
	if len(fs) == 1 {
		return nil, nil
	}
	templates := &promptui.SelectTemplates{
		Label:    "{{ . | magenta }} flags?",
		Active:   "➜ {{ if eq .Value.Type \"done\" }}{{ .Name | bold | green }}{{ else }}--{{ .Name | bold }} {{ .Usage | cyan }}{{ end }}",
		Inactive: "  {{ if eq .Value.Type \"done\" }}{{ .Name | faint | green }}{{ else }}--{{ .Name }} {{ .Usage | cyan }}{{ end }}",
		Selected: "{{ if ne .Value.Type \"done\" }}--{{ .Name | bold }}{{ end }}",
		Details: `
--------- Details ----------
default: {{ .DefValue }}
type: {{ .Value.Type }}`,
	}

	chosen := map[string]string{}
	var order []string
	cursor := 0
	for {
		prompt := promptui.Select{
			HideHelp:  true,
			Label:     cmd.Name(),
			Items:     fs,
			Templates: templates,
			Size:      10,
			CursorPos: cursor,
			Searcher: func(input string, index int) bool {
				return matches(fs[index].Name, input)
			},
			Stdin:  w.In,
			Stdout: w.Out,
		}
		i, _, err := prompt.Run()
		if err != nil {
			return nil, err
		}
		cursor = i
		f := fs[i]
		if f == done {
			break
		}
		var value string
		if f.Value.Type() == "bool" {
			value, err = w.promptBool(f)
		} else {
			value, err = w.prompt("--"+f.Name, f.DefValue, false)
		}
		if err != nil {
			return nil, err
		}
		if _, seen := chosen[f.Name]; !seen {
			order = append(order, f.Name)
		}
		chosen[f.Name] = value
	}

	out := make([]string, 0, len(order))
	for _, name := range order {
		out = append(out, FlagArg(cmd.Flags().Lookup(name), chosen[name]))
	}
	return out, nil
}

var answerTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }} : ",
	Valid:   "{{ . | green }} : ",
	Invalid: "{{ . | red }} : ",
	Success: "{{ . | bold }} : ",
}

// prompt reads a free-form answer, falling back to def when empty.
func (w *Wizard) prompt(label, def string, required bool) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]", label, def)
	}
	prompt := promptui.Prompt{
		Label:     label,
		Templates: answerTemplates,
		Validate: func(input string) error {
			if required && strings.TrimSpace(input) == "" && def == "" {
				return errors.New("required")
			}
			return nil
		},
		Stdin:  w.In,
		Stdout: w.Out,
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(result) == "" {
		return def, nil
	}
	return result, nil
}

func (w *Wizard) promptBool(f *pflag.Flag) (string, error) {
	label := "--" + f.Name + " true/false"
	if def, err := ParseBool(f.DefValue); err == nil {
		if def {
			label = "--" + f.Name + " [true]/false"
		} else {
			label = "--" + f.Name + " true/[false]"
		}
	}
	prompt := promptui.Prompt{
		Label:     label,
		Templates: answerTemplates,
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			_, err := ParseBool(input)
			return err
		},
		Stdin:  w.In,
		Stdout: w.Out,
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if result == "" {
		result = f.DefValue
	}
	b, _ := ParseBool(result)
	return fmt.Sprintf("%t", b), nil
}

func matches(name, input string) bool {
	name = strings.ReplaceAll(strings.ToLower(name), " ", "")
	input = strings.ReplaceAll(strings.ToLower(input), " ", "")
	return strings.Contains(name, input)
}

// Commands lists the subcommands of cmd a user can pick.
func Commands(cmd *cobra.Command, skip map[string]bool) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.Name() == "help" || skip[c.Name()] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CommandPath is the argument list that selects cmd from root.
func CommandPath(root, cmd *cobra.Command) []string {
	var path []string
	for c := cmd; c != nil && c != root; c = c.Parent() {
		path = append([]string{c.Name()}, path...)
	}
	return path
}

// Flags lists the visible flags of cmd, local and inherited.
func Flags(cmd *cobra.Command) []*pflag.Flag {
	var fs []*pflag.Flag
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		fs = append(fs, f)
	})
	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" || containsFlag(fs, f.Name) {
			return
		}
		fs = append(fs, f)
	})
	return fs
}

func containsFlag(fs []*pflag.Flag, name string) bool {
	for _, f := range fs {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Placeholder is a positional argument named in a command's usage line.
type Placeholder struct {
	Name     string
	Required bool
}

var placeholderRE = regexp.MustCompile(`<[^>]+>|\[[^\]]+\]`)

// Placeholders reads the positional arguments from a usage line such as
// "add <label id> [note]".
func Placeholders(use string) []Placeholder {
	var out []Placeholder
	for _, m := range placeholderRE.FindAllString(use, -1) {
		out = append(out, Placeholder{
			Name:     strings.TrimSuffix(m[1:len(m)-1], "..."),
			Required: m[0] == '<',
		})
	}
	return out
}

// FlagArg renders one flag assignment for SetArgs. No shell quoting is
// applied since the value never passes through a shell.
func FlagArg(f *pflag.Flag, value string) string {
	if f.Value.Type() == "bool" {
		if b, err := ParseBool(value); err == nil && b {
			return "--" + f.Name
		}
		return "--" + f.Name + "=false"
	}
	return fmt.Sprintf("--%s=%s", f.Name, value)
}
