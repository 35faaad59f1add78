package snake

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func tree() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "planner"}
	root.PersistentFlags().Bool("json", false, "Output as JSON.")
	event := &cobra.Command{Use: "event"}
	add := &cobra.Command{Use: "add <label id> [note...]", Run: func(*cobra.Command, []string) {}}
	add.Flags().String("start", "", "First day.")
	add.Flags().Bool("all-day", true, "Whole day.")
	add.Flags().String("secret", "", "")
	_ = add.Flags().MarkHidden("secret")
	hidden := &cobra.Command{Use: "internal", Hidden: true, Run: func(*cobra.Command, []string) {}}
	auto := &cobra.Command{Use: "auto", Run: func(*cobra.Command, []string) {}}
	event.AddCommand(add)
	root.AddCommand(event, hidden, auto)
	return root, add
}

func names(cmds []*cobra.Command) []string {
	var out []string
	for _, c := range cmds {
		out = append(out, c.Name())
	}
	return out
}

func TestCommands(t *testing.T) {
	root, _ := tree()
	got := names(Commands(root, map[string]bool{"auto": true}))
	if !reflect.DeepEqual(got, []string{"event"}) {
		t.Fatalf("Commands = %v", got)
	}
}

func TestCommandPath(t *testing.T) {
	root, add := tree()
	if got := CommandPath(root, add); !reflect.DeepEqual(got, []string{"event", "add"}) {
		t.Fatalf("CommandPath = %v", got)
	}
}

func TestFlags(t *testing.T) {
	_, add := tree()
	var got []string
	for _, f := range Flags(add) {
		got = append(got, f.Name)
	}
	want := []string{"all-day", "start", "json"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flags = %v, want %v", got, want)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("add <label id> [note...]")
	want := []Placeholder{{Name: "label id", Required: true}, {Name: "note", Required: false}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Placeholders = %+v", got)
	}
	if got := Placeholders("list"); got != nil {
		t.Fatalf("Placeholders(list) = %+v", got)
	}
}

func TestFlagArg(t *testing.T) {
	_, add := tree()
	tests := []struct {
		flag, value, want string
	}{
		{"start", "2025-03-05", "--start=2025-03-05"},
		{"start", "next friday", "--start=next friday"},
		{"all-day", "yes", "--all-day"},
		{"all-day", "n", "--all-day=false"},
	}
	for _, tt := range tests {
		if got := FlagArg(add.Flags().Lookup(tt.flag), tt.value); got != tt.want {
			t.Errorf("FlagArg(%s, %q) = %q, want %q", tt.flag, tt.value, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, in := range []string{"y", "Yes", "true", "1"} {
		if b, err := ParseBool(in); err != nil || !b {
			t.Errorf("ParseBool(%q) = %v, %v", in, b, err)
		}
	}
	for _, in := range []string{"n", "No", "false", "0"} {
		if b, err := ParseBool(in); err != nil || b {
			t.Errorf("ParseBool(%q) = %v, %v", in, b, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Error("ParseBool(maybe) should fail")
	}
}
